package commands

import (
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/errs"
	"jewelryorders/internal/pkg/guard"
)

var ErrSendDeliveryRemindersCommandIsNotConstructed = errors.New(
	"SendDeliveryRemindersCommand must be created via NewSendDeliveryRemindersCommand constructor",
)

// SendDeliveryRemindersCommand warns about orders whose delivery date is
// within windowDays or already past. The system actor is recorded as the
// notification's actor.
type SendDeliveryRemindersCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	windowDays int

	guard guard.ConstructorGuard
}

func NewSendDeliveryRemindersCommand(actor kernel.Actor, windowDays int) (SendDeliveryRemindersCommand, error) {
	var windowErr error
	if windowDays < 0 {
		windowErr = errs.NewValueIsOutOfRangeError("windowDays", windowDays, 0, "unbounded")
	}
	if err := errors.Join(actor.Validate(), windowErr); err != nil {
		return SendDeliveryRemindersCommand{}, err
	}

	return SendDeliveryRemindersCommand{actor: actor, windowDays: windowDays, guard: guard.NewConstructorGuard()}, nil
}

func (c SendDeliveryRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendDeliveryRemindersCommandIsNotConstructed)
}

func (c SendDeliveryRemindersCommand) Actor() kernel.Actor { return c.actor }
func (c SendDeliveryRemindersCommand) WindowDays() int     { return c.windowDays }
