package commands

import (
	"context"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
)

// MarkNotificationReadCommandHandler and RemoveNotificationCommandHandler
// update per-actor markers. Repeating either is a no-op.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory}
}

func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return updateMarker(ctx, h.uowFactory, cmd.NotificationID(), func(n *notification.Notification) bool {
		return n.MarkRead(cmd.Actor().ID)
	})
}

type RemoveNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewRemoveNotificationCommandHandler(uowFactory NotificationUoWFactory) RemoveNotificationCommandHandler {
	return RemoveNotificationCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveNotificationCommandHandler) Handle(ctx context.Context, cmd RemoveNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return updateMarker(ctx, h.uowFactory, cmd.NotificationID(), func(n *notification.Notification) bool {
		return n.Remove(cmd.Actor().ID)
	})
}

func updateMarker(
	ctx context.Context,
	uowFactory NotificationUoWFactory,
	id kernel.UUID,
	mark func(*notification.Notification) bool,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !mark(n) {
		return nil
	}
	if err = repo.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
