package commands

import (
	"errors"
	"maps"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/guard"
)

var (
	ErrRecordArrivalCommandIsNotConstructed = errors.New(
		"RecordArrivalCommand must be created via NewRecordArrivalCommand constructor",
	)
	ErrArrivedPiecesAreRequired = errors.New("arrived pieces are required")
)

// RecordArrivalCommand stores how many pieces of each line physically
// arrived from the supplier, keyed by detail line id.
type RecordArrivalCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	arrived map[string]int

	guard guard.ConstructorGuard
}

func NewRecordArrivalCommand(actor kernel.Actor, orderID kernel.UUID, arrived map[string]int) (RecordArrivalCommand, error) {
	var arrivedErr error
	if len(arrived) == 0 {
		arrivedErr = ErrArrivedPiecesAreRequired
	}
	if err := errors.Join(actor.Validate(), orderID.Validate(), arrivedErr); err != nil {
		return RecordArrivalCommand{}, err
	}

	return RecordArrivalCommand{
		actor:   actor,
		orderID: orderID,
		arrived: maps.Clone(arrived),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RecordArrivalCommand) Validate() error {
	return c.guard.Validate(ErrRecordArrivalCommandIsNotConstructed)
}

func (c RecordArrivalCommand) Actor() kernel.Actor     { return c.actor }
func (c RecordArrivalCommand) OrderID() kernel.UUID    { return c.orderID }
func (c RecordArrivalCommand) Arrived() map[string]int { return maps.Clone(c.arrived) }
