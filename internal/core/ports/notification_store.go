package ports

import (
	"context"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
)

// NotificationStore is the append-only sink the order engine writes to.
type NotificationStore interface {
	// Append stores n. Appending an id that already exists is a no-op.
	Append(ctx context.Context, n *notification.Notification) error
}

// NotificationRepository adds the bookkeeping the inbox needs on top of
// NotificationStore.
type NotificationRepository interface {
	NotificationStore

	// Get returns one notification or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// Update persists read and removed markers.
	Update(ctx context.Context, n *notification.Notification) error

	// ListForRole returns the notifications whose audience contains role,
	// newest first.
	ListForRole(ctx context.Context, role kernel.Role) ([]*notification.Notification, error)
}

// NotificationPublisher pushes stored notifications to live subscribers.
// Delivery is best effort.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *notification.Notification) error
}
