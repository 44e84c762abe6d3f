package services_test

import (
	"testing"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLifecycle_CreateToStockReady(t *testing.T) {
	clock := tickingClock(t0)
	consolidator := services.NewItemConsolidator(kernel.NewSequenceGenerator("line"))
	machine := services.NewStatusMachine(clock)

	items, _, err := consolidator.Upsert(nil, services.ItemDraft{Purity: "8k", Color: "rg", Size: "n", WeightSpec: "3", Pcs: 2})
	require.NoError(t, err)

	o, err := order.NewOrder(order.Header{
		ID:           kernel.NewUUID(),
		PONumber:     "PO-100",
		Factory:      kernel.Reference{ID: "f-1", Name: "Sinar Mas"},
		DeliveryDate: t0.AddDate(0, 0, 7),
	}, order.Content{Category: order.Basic, BasicName: "Rantai Italy", Items: items}, coordinator, clock())
	require.NoError(t, err)
	assert.Equal(t, order.New, o.Status())

	_, err = machine.ApplyTransition(o, supplier, order.InProduction, o.RevisionCount())
	require.NoError(t, err)
	_, err = machine.ApplyTransition(o, supplier, order.StockReady, o.RevisionCount())
	require.NoError(t, err)

	assert.Equal(t, order.StockReady, o.Status())
	assert.Empty(t, o.Revisions())
	assert.Equal(t, supplier.ID, o.UpdatedBy())
	assert.Equal(t, t0.Add(3*time.Minute), o.UpdatedAt())
	assert.Equal(t, coordinator.ID, o.CreatedBy())
	require.Len(t, o.Items(), 1)
	line := o.Items()[0]
	assert.Equal(t, "8k", line.Purity)
	assert.Equal(t, "rg", line.Color)
	assert.Equal(t, "n", line.Size)
	assert.Equal(t, "3", line.Weight)
	assert.Equal(t, 2, line.Pcs)
}
