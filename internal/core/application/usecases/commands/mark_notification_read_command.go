package commands

import (
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/guard"
)

var (
	ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
		"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
	)
	ErrRemoveNotificationCommandIsNotConstructed = errors.New(
		"RemoveNotificationCommand must be created via NewRemoveNotificationCommand constructor",
	)
)

// MarkNotificationReadCommand marks one notification as read by actor.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	actor          kernel.Actor
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(actor kernel.Actor, notificationID kernel.UUID) (MarkNotificationReadCommand, error) {
	if err := errors.Join(actor.Validate(), notificationID.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{actor: actor, notificationID: notificationID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) Actor() kernel.Actor         { return c.actor }
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID { return c.notificationID }

// RemoveNotificationCommand hides one notification from actor's inbox.
type RemoveNotificationCommand struct { //nolint:recvcheck //using for validation
	actor          kernel.Actor
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveNotificationCommand(actor kernel.Actor, notificationID kernel.UUID) (RemoveNotificationCommand, error) {
	if err := errors.Join(actor.Validate(), notificationID.Validate()); err != nil {
		return RemoveNotificationCommand{}, err
	}
	return RemoveNotificationCommand{actor: actor, notificationID: notificationID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveNotificationCommand) Validate() error {
	return c.guard.Validate(ErrRemoveNotificationCommandIsNotConstructed)
}

func (c RemoveNotificationCommand) Actor() kernel.Actor         { return c.actor }
func (c RemoveNotificationCommand) NotificationID() kernel.UUID { return c.notificationID }
