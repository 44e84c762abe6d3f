package services_test

import (
	"testing"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	t0          = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	coordinator = kernel.Actor{ID: "jb-1", Role: kernel.Coordinator}
	supplier    = kernel.Actor{ID: "pabrik-1", Role: kernel.Supplier}
	sales       = kernel.Actor{ID: "sales-7", Role: kernel.Sales}
)

// tickingClock advances by one minute on every call.
func tickingClock(start time.Time) kernel.Clock {
	now := start
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.Header{
		ID:           kernel.NewUUID(),
		PONumber:     "PO-77",
		Factory:      kernel.Reference{ID: "f-1", Name: "Sinar Mas"},
		Customer:     kernel.Reference{ID: "c-1", Name: "Toko Emas Jaya"},
		DeliveryDate: t0.AddDate(0, 0, 10),
	}, order.Content{
		Category:  order.Basic,
		BasicName: "Rantai Italy",
		Items: []order.DetailItem{
			{ID: "i-1", Purity: "8k", Color: "rg", Size: "45", Weight: "2", Pcs: 2},
		},
	}, coordinator, t0)
	require.NoError(t, err)
	return o
}
