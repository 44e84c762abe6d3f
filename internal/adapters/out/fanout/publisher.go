// Package fanout delivers one notification to several publishers.
package fanout

import (
	"context"
	"errors"

	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/ports"
)

// Publisher calls every target even when earlier ones fail and returns the
// joined errors.
type Publisher struct {
	targets []ports.NotificationPublisher
}

func NewPublisher(targets ...ports.NotificationPublisher) *Publisher {
	kept := make([]ports.NotificationPublisher, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &Publisher{targets: kept}
}

func (p *Publisher) Publish(ctx context.Context, n *notification.Notification) error {
	var errs []error
	for _, t := range p.targets {
		if err := t.Publish(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
