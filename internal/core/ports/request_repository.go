package ports

import (
	"context"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/request"
)

// RequestRepository gives read-only access to customer requests.
type RequestRepository interface {
	Load(ctx context.Context) ([]*request.Request, error)

	// Get returns one request or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)
}
