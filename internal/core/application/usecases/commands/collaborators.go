package commands

import (
	"context"
	"log/slog"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
	"jewelryorders/internal/core/ports"
)

// Collaborators bundles what order command handlers share besides their
// unit of work. Publisher and Cache are optional.
type Collaborators struct {
	Clock     kernel.Clock
	IDs       kernel.IDGenerator
	Publisher ports.NotificationPublisher
	Cache     ports.StatusCache
	Logger    *slog.Logger
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Clock == nil {
		c.Clock = kernel.SystemClock
	}
	if c.IDs == nil {
		c.IDs = kernel.UUIDGenerator{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

func (c Collaborators) consolidator() services.ItemConsolidator {
	return services.NewItemConsolidator(c.IDs)
}

func (c Collaborators) statusMachine() services.StatusMachine {
	return services.NewStatusMachine(c.Clock)
}

func (c Collaborators) recorder() services.RevisionRecorder {
	return services.NewRevisionRecorder(c.Clock)
}

func (c Collaborators) emitter() services.NotificationEmitter {
	return services.NewNotificationEmitter(c.Clock)
}

// publish pushes committed notifications to live subscribers. Failures are
// logged only; the notifications are already stored.
func (c Collaborators) publish(ctx context.Context, ns ...*notification.Notification) {
	if c.Publisher == nil {
		return
	}
	for _, n := range ns {
		if err := c.Publisher.Publish(ctx, n); err != nil {
			c.Logger.WarnContext(ctx, "failed to publish notification",
				"notification_id", n.ID().String(), "event", n.EventType().String(), "error", err)
		}
	}
}

// cacheStatus refreshes the status cache after a commit.
func (c Collaborators) cacheStatus(ctx context.Context, o *order.Order) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.Set(ctx, o.ID(), o.Status(), o.UpdatedAt()); err != nil {
		c.Logger.WarnContext(ctx, "failed to cache order status",
			"order_id", o.ID().String(), "status", o.Status().String(), "error", err)
	}
}

// buildAll builds one notification per event, stopping at the first error.
func (c Collaborators) buildAll(events ...services.Event) ([]*notification.Notification, error) {
	emitter := c.emitter()
	out := make([]*notification.Notification, 0, len(events))
	for _, ev := range events {
		n, err := emitter.Build(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func appendAll(ctx context.Context, store ports.NotificationStore, ns []*notification.Notification) error {
	for _, n := range ns {
		if err := store.Append(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
