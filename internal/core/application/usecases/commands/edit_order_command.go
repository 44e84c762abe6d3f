package commands

import (
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
	"jewelryorders/internal/pkg/guard"
)

var (
	ErrEditOrderCommandIsNotConstructed = errors.New(
		"EditOrderCommand must be created via NewEditOrderCommand constructor",
	)
	ErrNothingToEdit      = errors.New("edit contains no changes")
	ErrItemsEditedTwoWays = errors.New("detail lines must be edited through item changes, not the field set")
)

// ItemEdit replaces the mutable fields of one existing line.
type ItemEdit struct {
	ID     string
	Fields order.DetailItem
}

// ItemChanges lists line edits. They are applied in the order removals,
// edits, additions.
type ItemChanges struct {
	Removals  []string
	Edits     []ItemEdit
	Additions []services.ItemDraft
}

func (c ItemChanges) IsEmpty() bool {
	return len(c.Removals) == 0 && len(c.Edits) == 0 && len(c.Additions) == 0
}

// EditOrderCommand represents a coordinator or supplier editing order
// content. LastSeenRevisions is the revision count the editor loaded; pass
// a negative value to skip the staleness check.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	actor             kernel.Actor
	orderID           kernel.UUID
	lastSeenRevisions int
	fields            order.FieldSet
	items             ItemChanges

	guard guard.ConstructorGuard
}

func NewEditOrderCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	lastSeenRevisions int,
	fields order.FieldSet,
	items ItemChanges,
) (EditOrderCommand, error) {
	var itemsErr, emptyErr error
	if fields.Items != nil {
		itemsErr = ErrItemsEditedTwoWays
	}
	if fields.IsEmpty() && items.IsEmpty() {
		emptyErr = ErrNothingToEdit
	}
	if err := errors.Join(actor.Validate(), orderID.Validate(), itemsErr, emptyErr); err != nil {
		return EditOrderCommand{}, err
	}

	return EditOrderCommand{
		actor:             actor,
		orderID:           orderID,
		lastSeenRevisions: lastSeenRevisions,
		fields:            fields.Clone(),
		items:             items,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) Actor() kernel.Actor      { return c.actor }
func (c EditOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c EditOrderCommand) LastSeenRevisions() int   { return c.lastSeenRevisions }
func (c EditOrderCommand) Fields() order.FieldSet   { return c.fields.Clone() }
func (c EditOrderCommand) ItemChanges() ItemChanges { return c.items }
