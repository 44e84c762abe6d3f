package commands

import (
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/guard"
)

var ErrViewOrderCommandIsNotConstructed = errors.New(
	"ViewOrderCommand must be created via NewViewOrderCommand constructor",
)

// ViewOrderCommand records that actor opened an order.
type ViewOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewViewOrderCommand(actor kernel.Actor, orderID kernel.UUID) (ViewOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return ViewOrderCommand{}, err
	}
	return ViewOrderCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ViewOrderCommand) Validate() error {
	return c.guard.Validate(ErrViewOrderCommandIsNotConstructed)
}

func (c ViewOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c ViewOrderCommand) OrderID() kernel.UUID { return c.orderID }
