package services_test

import (
	"testing"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMachine_ApplyTransition(t *testing.T) {
	t.Run("supplier moves New to InProduction", func(t *testing.T) {
		o := newOrder(t)
		at := t0.Add(3 * time.Hour)
		machine := services.NewStatusMachine(kernel.FixedClock(at))

		got, err := machine.ApplyTransition(o, supplier, order.InProduction, 0)

		require.NoError(t, err)
		assert.Same(t, o, got)
		assert.Equal(t, order.InProduction, o.Status())
		assert.Equal(t, at, o.UpdatedAt())
		assert.Equal(t, supplier.ID, o.UpdatedBy())
		assert.Empty(t, o.Revisions())
	})

	t.Run("Completed to New fails and leaves the order untouched", func(t *testing.T) {
		o := newOrder(t)
		machine := services.NewStatusMachine(tickingClock(t0))
		for _, step := range []struct {
			actor kernel.Actor
			to    order.Status
		}{
			{supplier, order.StockReady},
			{supplier, order.ReadyForPickup},
			{coordinator, order.Completed},
		} {
			_, err := machine.ApplyTransition(o, step.actor, step.to, -1)
			require.NoError(t, err)
		}
		before := o.Snapshot()

		got, err := machine.ApplyTransition(o, coordinator, order.New, -1)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, got)
		assert.Equal(t, before, o.Snapshot())
	})

	t.Run("sales may not change status", func(t *testing.T) {
		o := newOrder(t)

		_, err := services.NewStatusMachine(nil).ApplyTransition(o, sales, order.Cancelled, -1)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.New, o.Status())
	})

	t.Run("stale revision count is rejected", func(t *testing.T) {
		o := newOrder(t)

		_, err := services.NewStatusMachine(nil).ApplyTransition(o, supplier, order.InProduction, 3)

		require.ErrorIs(t, err, errs.ErrStaleWrite)
		assert.Equal(t, order.New, o.Status())
	})

	t.Run("nil order is a contract violation", func(t *testing.T) {
		_, err := services.NewStatusMachine(nil).ApplyTransition(nil, supplier, order.InProduction, -1)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
