package commands

import (
	"context"

	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
)

// RecordArrivalCommandHandler records supply quantities on a ReadyForPickup
// order and emits order_arrival_recorded. No revision is recorded.
type RecordArrivalCommandHandler struct {
	uowFactory OrderUoWFactory
	collab     Collaborators
}

func NewRecordArrivalCommandHandler(uowFactory OrderUoWFactory, collab Collaborators) RecordArrivalCommandHandler {
	return RecordArrivalCommandHandler{
		uowFactory: uowFactory,
		collab:     collab.withDefaults(),
	}
}

func (h *RecordArrivalCommandHandler) Handle(ctx context.Context, cmd RecordArrivalCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.RecordArrival(cmd.Actor(), cmd.Arrived(), h.collab.Clock()); err != nil {
		return err
	}
	if err = orderRepo.Save(ctx, []*order.Order{o}); err != nil {
		return err
	}

	ns, err := h.collab.buildAll(services.Event{
		Type: notification.OrderArrivalRecorded, Actor: cmd.Actor(), Order: o, At: o.UpdatedAt(),
	})
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
