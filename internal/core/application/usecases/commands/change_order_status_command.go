package commands

import (
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests a status transition on behalf of actor.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor             kernel.Actor
	orderID           kernel.UUID
	status            order.Status
	lastSeenRevisions int

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	status order.Status,
	lastSeenRevisions int,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		actor:             actor,
		orderID:           orderID,
		status:            status,
		lastSeenRevisions: lastSeenRevisions,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() kernel.Actor    { return c.actor }
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID   { return c.orderID }
func (c ChangeOrderStatusCommand) Status() order.Status   { return c.status }
func (c ChangeOrderStatusCommand) LastSeenRevisions() int { return c.lastSeenRevisions }
