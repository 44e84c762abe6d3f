package commands

import (
	"context"

	"jewelryorders/internal/core/domain/services"
)

// NotifyRequestEventCommandHandler builds and stores a request notification
// addressed to the request's originator.
type NotifyRequestEventCommandHandler struct {
	uowFactory UoWFactory
	collab     Collaborators
}

func NewNotifyRequestEventCommandHandler(uowFactory UoWFactory, collab Collaborators) NotifyRequestEventCommandHandler {
	return NotifyRequestEventCommandHandler{
		uowFactory: uowFactory,
		collab:     collab.withDefaults(),
	}
}

func (h *NotifyRequestEventCommandHandler) Handle(ctx context.Context, cmd NotifyRequestEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	req, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	ns, err := h.collab.buildAll(services.Event{Type: cmd.EventType(), Actor: cmd.Actor(), Request: req})
	if err != nil {
		return err
	}
	if err = appendAll(ctx, uow.NotificationRepository(), ns); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.collab.publish(ctx, ns...)
	return nil
}
