// Package ports defines the contracts between the order core and its
// infrastructure: persistence, image storage, live delivery and caching.
package ports

import (
	"context"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates including their detail lines and
// revision history. Orders are never deleted.
type OrderRepository interface {
	// Load returns every stored order.
	Load(ctx context.Context) ([]*order.Order, error)

	// Save writes the given orders, inserting new ones and overwriting
	// existing ones by id. Orders not in the slice are left as they are.
	Save(ctx context.Context, orders []*order.Order) error

	// Get returns one order or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
