package commands_test

import (
	"testing"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	header := order.Header{ID: kernel.NewUUID(), PONumber: "PO-1"}
	drafts := []services.ItemDraft{{Purity: "8k", WeightSpec: "2"}}

	cmd, err := commands.NewCreateOrderCommand(coordinator, header, order.Content{
		Category: order.Basic,
		Items:    []order.DetailItem{{ID: "ignored"}},
	}, drafts)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, header, cmd.Header())
	assert.Equal(t, coordinator, cmd.Actor())
	assert.Nil(t, cmd.Product().Items)
	assert.Equal(t, drafts, cmd.Drafts())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(coordinator, order.Header{}, order.Content{},
		[]services.ItemDraft{{WeightSpec: "2"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_NoDrafts(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(coordinator, order.Header{ID: kernel.NewUUID()}, order.Content{}, nil)

	require.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
