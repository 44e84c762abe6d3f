package commands

import (
	"context"

	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler runs the status machine and emits
// order_status_changed, plus order_closed when the order is completed.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	collab     Collaborators
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, collab Collaborators) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		collab:     collab.withDefaults(),
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	previous := o.Status()
	if _, err = h.collab.statusMachine().ApplyTransition(o, cmd.Actor(), cmd.Status(), cmd.LastSeenRevisions()); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, []*order.Order{o}); err != nil {
		return err
	}

	events := []services.Event{{
		Type: notification.OrderStatusChanged, Actor: cmd.Actor(), Order: o,
		PreviousStatus: previous, At: o.UpdatedAt(),
	}}
	if o.Status() == order.Completed {
		events = append(events, services.Event{
			Type: notification.OrderClosed, Actor: cmd.Actor(), Order: o, At: o.UpdatedAt(),
		})
	}
	ns, err := h.collab.buildAll(events...)
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
	h.collab.cacheStatus(ctx, o)
	return nil
}
