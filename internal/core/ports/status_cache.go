package ports

import (
	"context"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
)

// StatusCache holds the latest known status per order for cheap polling.
// It is never the source of truth.
type StatusCache interface {
	Set(ctx context.Context, id kernel.UUID, status order.Status, at time.Time) error

	// Get returns false when nothing is cached for id.
	Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error)
}
