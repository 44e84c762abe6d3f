package commands

import (
	"context"

	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
)

// EditOrderCommandHandler applies a content edit as one revision. The order
// is forced to Viewed and order_revised is emitted with the changed fields.
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	collab     Collaborators
}

func NewEditOrderCommandHandler(uowFactory OrderUoWFactory, collab Collaborators) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		collab:     collab.withDefaults(),
	}
}

func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
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

	proposed := cmd.Fields()
	if changes := cmd.ItemChanges(); !changes.IsEmpty() {
		if proposed.Items, err = h.consolidate(o.Items(), changes); err != nil {
			return err
		}
	}

	recorder := h.collab.recorder()
	rev, err := recorder.Diff(o, proposed, cmd.Actor())
	if err != nil {
		return err
	}
	if _, err = recorder.Append(o, rev, cmd.LastSeenRevisions()); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, []*order.Order{o}); err != nil {
		return err
	}

	ns, err := h.collab.buildAll(services.Event{
		Type: notification.OrderRevised, Actor: cmd.Actor(), Order: o, Revision: &rev, At: rev.At,
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
	h.collab.cacheStatus(ctx, o)
	return nil
}

func (h *EditOrderCommandHandler) consolidate(items []order.DetailItem, changes ItemChanges) ([]order.DetailItem, error) {
	consolidator := h.collab.consolidator()
	for _, id := range changes.Removals {
		items = consolidator.RemoveByID(items, id)
	}

	var err error
	for _, edit := range changes.Edits {
		if items, err = consolidator.EditByID(items, edit.ID, edit.Fields); err != nil {
			return nil, err
		}
	}
	for _, draft := range changes.Additions {
		if items, _, err = consolidator.Upsert(items, draft); err != nil {
			return nil, err
		}
	}
	return items, nil
}
