package requestrepo_test

import (
	"context"
	"testing"
	"time"

	"jewelryorders/internal/adapters/out/postgres/pgtest"
	"jewelryorders/internal/adapters/out/postgres/requestrepo"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/model/request"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormRequestRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	ctx := context.Background()
	container, db, err := pgtest.Start(ctx, func(db *gorm.DB) error {
		return db.AutoMigrate(&requestrepo.RequestDTO{})
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	repo := requestrepo.NewGormRequestRepository(db)
	req, err := request.NewRequest(kernel.NewUUID(), "REQ-1",
		kernel.Actor{ID: "sales-1", Role: kernel.Sales},
		kernel.Reference{ID: "c-1", Name: "Toko Emas"}, order.Model,
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, req))

		got, err := repo.Get(ctx, req.ID())

		require.NoError(t, err)
		require.Equal(t, req.Snapshot(), got.Snapshot())
	})

	t.Run("load", func(t *testing.T) {
		all, err := repo.Load(ctx)

		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Get(ctx, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
