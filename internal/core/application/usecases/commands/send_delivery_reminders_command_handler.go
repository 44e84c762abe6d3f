package commands

import (
	"context"
	"errors"
	"time"

	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
	"jewelryorders/internal/pkg/errs"
)

// SendDeliveryRemindersCommandHandler emits delivery_overdue for open orders
// past their delivery date and delivery_due_soon for open orders due within
// the window.
//
// Reminders are stamped with the start of the current UTC day, so running
// the job several times a day yields the same notification ids and only the
// first run stores and publishes them.
type SendDeliveryRemindersCommandHandler struct {
	uowFactory OrderUoWFactory
	collab     Collaborators
}

func NewSendDeliveryRemindersCommandHandler(uowFactory OrderUoWFactory, collab Collaborators) SendDeliveryRemindersCommandHandler {
	return SendDeliveryRemindersCommandHandler{
		uowFactory: uowFactory,
		collab:     collab.withDefaults(),
	}
}

// Handle returns the number of newly stored reminders.
func (h *SendDeliveryRemindersCommandHandler) Handle(ctx context.Context, cmd SendDeliveryRemindersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	day := h.collab.Clock().UTC().Truncate(24 * time.Hour)
	windowEnd := day.AddDate(0, 0, cmd.WindowDays()+1)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().Load(ctx)
	if err != nil {
		return 0, err
	}

	notifications := uow.NotificationRepository()
	emitter := h.collab.emitter()
	stored := make([]*notification.Notification, 0)
	for _, o := range orders {
		eventType, due := reminderFor(o, day, windowEnd)
		if !due {
			continue
		}

		n, buildErr := emitter.Build(services.Event{Type: eventType, Actor: cmd.Actor(), Order: o, At: day})
		if buildErr != nil {
			return 0, buildErr
		}

		if _, getErr := notifications.Get(ctx, n.ID()); getErr == nil {
			continue
		} else if !errors.Is(getErr, errs.ErrObjectNotFound) {
			return 0, getErr
		}

		if err = notifications.Append(ctx, n); err != nil {
			return 0, err
		}
		stored = append(stored, n)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.collab.publish(ctx, stored...)
	return len(stored), nil
}

func reminderFor(o *order.Order, day, windowEnd time.Time) (notification.EventType, bool) {
	if o.Status().IsTerminal() {
		return notification.UnknownEvent, false
	}
	due := o.DeliveryDate().UTC().Truncate(24 * time.Hour)
	switch {
	case due.Before(day):
		return notification.DeliveryOverdue, true
	case due.Before(windowEnd):
		return notification.DeliveryDueSoon, true
	}
	return notification.UnknownEvent, false
}
