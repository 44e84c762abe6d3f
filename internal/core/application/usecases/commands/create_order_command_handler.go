package commands

import (
	"context"
	"errors"
	"fmt"

	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/model/request"
	"jewelryorders/internal/core/domain/services"
	"jewelryorders/internal/pkg/errs"
)

// CreateOrderCommandHandler consolidates the drafted lines, creates the order
// in New and emits order_created. When the order is converted from a customer
// request, that request must exist and request_converted is emitted as well.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	collab     Collaborators
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, collab Collaborators) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		collab:     collab.withDefaults(),
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	consolidator := h.collab.consolidator()
	items := []order.DetailItem{}
	for _, draft := range cmd.Drafts() {
		var err error
		if items, _, err = consolidator.Upsert(items, draft); err != nil {
			return err
		}
	}

	content := cmd.Product()
	content.Items = items
	o, err := order.NewOrder(cmd.Header(), content, cmd.Actor(), h.collab.Clock())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if _, err = orderRepo.Get(ctx, o.ID()); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("order %s already exists", o.ID()))
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	var req *request.Request
	if requestID := o.RequestID(); requestID != nil {
		if req, err = uow.RequestRepository().Get(ctx, *requestID); err != nil {
			return err
		}
	}

	if err = orderRepo.Save(ctx, []*order.Order{o}); err != nil {
		return err
	}

	events := []services.Event{{Type: notification.OrderCreated, Actor: cmd.Actor(), Order: o}}
	if req != nil {
		events = append(events, services.Event{
			Type: notification.RequestConverted, Actor: cmd.Actor(), Request: req, Order: o,
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
