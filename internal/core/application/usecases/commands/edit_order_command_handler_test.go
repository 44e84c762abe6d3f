package commands_test

import (
	"testing"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewEditOrderCommand(t *testing.T) {
	t.Run("should reject an empty edit", func(t *testing.T) {
		_, err := commands.NewEditOrderCommand(coordinator, kernel.NewUUID(), 0, order.FieldSet{}, commands.ItemChanges{})

		require.ErrorIs(t, err, commands.ErrNothingToEdit)
	})

	t.Run("should reject items in the field set", func(t *testing.T) {
		_, err := commands.NewEditOrderCommand(coordinator, kernel.NewUUID(), 0,
			order.FieldSet{Items: []order.DetailItem{}}, commands.ItemChanges{})

		require.ErrorIs(t, err, commands.ErrItemsEditedTwoWays)
	})
}

func TestEditOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	require.NoError(t, o.ChangeStatus(supplier, order.StockReady, now))
	cmd, err := commands.NewEditOrderCommand(supplier, o.ID(), 0,
		order.FieldSet{PhotoID: order.StringPtr("img-1")},
		commands.ItemChanges{
			Removals:  []string{"i-2"},
			Edits:     []commands.ItemEdit{{ID: "i-1", Fields: order.DetailItem{Purity: "8k", Color: "rg", Size: "45", Weight: "2", Pcs: 5}}},
			Additions: []services.ItemDraft{{Purity: "8k", Color: "rg", Size: "45", WeightSpec: "7-8", Pcs: 1}},
		})
	require.NoError(t, err)

	uow := newUoW()
	cache := new(MockStatusCache)
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.orders.On("Save", mock.Anything, []*order.Order{o}).Return(nil).Once()
	uow.notifications.On("Append", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.EventType() == notification.OrderRevised && len(n.Changes()) == 2
	})).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	cache.On("Set", mock.Anything, o.ID(), order.Viewed, now).Return(nil).Once()

	h := commands.NewEditOrderCommandHandler(MockOrderUoWFactory{uow}, collaborators(nil, cache))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Viewed, o.Status())
	assert.Equal(t, "img-1", o.PhotoID())
	require.Len(t, o.Revisions(), 1)
	rev := o.Revisions()[0]
	assert.Equal(t, supplier, rev.Actor)
	assert.Len(t, rev.PreviousValues.Items, 2)

	items := o.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "i-1", items[0].ID)
	assert.Equal(t, 5, items[0].Pcs)
	assert.Equal(t, []string{"7", "8"}, []string{items[1].Weight, items[2].Weight})
	uow.assertAll(t)
	cache.AssertExpectations(t)
}

func TestEditOrderCommandHandler_Handle_Stale(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	cmd, err := commands.NewEditOrderCommand(coordinator, o.ID(), 3,
		order.FieldSet{BasicName: order.StringPtr("X")}, commands.ItemChanges{})
	require.NoError(t, err)

	uow := newUoW()
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	h := commands.NewEditOrderCommandHandler(MockOrderUoWFactory{uow}, collaborators(nil, nil))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStaleWrite)
	assert.Equal(t, "Rantai Italy", o.BasicName())
	uow.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEditOrderCommandHandler_Handle_UnknownLine(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	cmd, err := commands.NewEditOrderCommand(coordinator, o.ID(), -1, order.FieldSet{},
		commands.ItemChanges{Edits: []commands.ItemEdit{{ID: "nope"}}})
	require.NoError(t, err)

	uow := newUoW()
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	h := commands.NewEditOrderCommandHandler(MockOrderUoWFactory{uow}, collaborators(nil, nil))

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	assert.Empty(t, o.Revisions())
}
