package commands

import (
	"context"

	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
)

// ViewOrderCommandHandler moves a New order to Viewed the first time a
// supplier opens it and emits order_viewed. Any other view changes nothing.
type ViewOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	collab     Collaborators
}

func NewViewOrderCommandHandler(uowFactory OrderUoWFactory, collab Collaborators) ViewOrderCommandHandler {
	return ViewOrderCommandHandler{
		uowFactory: uowFactory,
		collab:     collab.withDefaults(),
	}
}

// Handle reports whether the view changed the order.
func (h *ViewOrderCommandHandler) Handle(ctx context.Context, cmd ViewOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}
	changed, err := o.MarkViewed(cmd.Actor(), h.collab.Clock())
	if err != nil || !changed {
		return false, err
	}
	if err = orderRepo.Save(ctx, []*order.Order{o}); err != nil {
		return false, err
	}

	ns, err := h.collab.buildAll(services.Event{
		Type: notification.OrderViewed, Actor: cmd.Actor(), Order: o, At: o.UpdatedAt(),
	})
	if err != nil {
		return false, err
	}
	if err = appendAll(ctx, uow.NotificationRepository(), ns); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.collab.publish(ctx, ns...)
	h.collab.cacheStatus(ctx, o)
	return true, nil
}
