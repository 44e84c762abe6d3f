package order_test

import (
	"testing"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	createdAt   = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	coordinator = kernel.Actor{ID: "jb-1", Role: kernel.Coordinator}
	supplier    = kernel.Actor{ID: "pabrik-1", Role: kernel.Supplier}
)

func validHeader() order.Header {
	return order.Header{
		ID:           kernel.NewUUID(),
		PONumber:     "PO-2026-0001",
		Factory:      kernel.Reference{ID: "f-1", Name: "Sinar Mas"},
		Customer:     kernel.Reference{ID: "c-1", Name: "Toko Emas Jaya"},
		DeliveryDate: createdAt.AddDate(0, 0, 14),
	}
}

func basicContent() order.Content {
	return order.Content{
		Category:    order.Basic,
		ProductType: "kalung",
		BasicName:   "Rantai Italy",
		Items: []order.DetailItem{
			{ID: "i-1", Purity: "8k", Color: "rg", Size: "45", Weight: "2", Pcs: 3},
			{ID: "i-2", Purity: "8k", Color: "rg", Size: "45", Weight: "4", Pcs: 1},
		},
	}
}

func newBasicOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(validHeader(), basicContent(), coordinator, createdAt)
	require.NoError(t, err)
	return o
}
