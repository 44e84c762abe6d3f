package commands

import (
	"errors"
	"fmt"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/pkg/errs"
	"jewelryorders/internal/pkg/guard"
)

var ErrNotifyRequestEventCommandIsNotConstructed = errors.New(
	"NotifyRequestEventCommand must be created via NewNotifyRequestEventCommand constructor",
)

// NotifyRequestEventCommand reports something that happened to a customer
// request so the interested roles are notified. Requests themselves are
// owned elsewhere and are only read here.
type NotifyRequestEventCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	requestID kernel.UUID
	eventType notification.EventType

	guard guard.ConstructorGuard
}

func NewNotifyRequestEventCommand(
	actor kernel.Actor,
	requestID kernel.UUID,
	eventType notification.EventType,
) (NotifyRequestEventCommand, error) {
	var eventErr error
	if eventType.Entity() != notification.EntityRequest {
		eventErr = errs.NewValueIsInvalidErrorWithCause("event type",
			fmt.Errorf("%s is not a request event", eventType))
	}
	if err := errors.Join(actor.Validate(), requestID.Validate(), eventErr); err != nil {
		return NotifyRequestEventCommand{}, err
	}

	return NotifyRequestEventCommand{
		actor:     actor,
		requestID: requestID,
		eventType: eventType,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c NotifyRequestEventCommand) Validate() error {
	return c.guard.Validate(ErrNotifyRequestEventCommandIsNotConstructed)
}

func (c NotifyRequestEventCommand) Actor() kernel.Actor               { return c.actor }
func (c NotifyRequestEventCommand) RequestID() kernel.UUID            { return c.requestID }
func (c NotifyRequestEventCommand) EventType() notification.EventType { return c.eventType }
