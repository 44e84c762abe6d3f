package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/ports"
	"jewelryorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler answers from the status cache when it can and
// falls back to the orders table, warming the cache on the way out. Cache
// failures are logged and treated as misses.
type GetOrderStatusQueryHandler struct {
	db     *gorm.DB
	cache  ports.StatusCache
	logger *slog.Logger
}

func NewGetOrderStatusQueryHandler(db *gorm.DB, cache ports.StatusCache, logger *slog.Logger) GetOrderStatusQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderStatusQueryHandler{db: db, cache: cache, logger: logger}
}

func (h GetOrderStatusQueryHandler) Handle(ctx context.Context, query GetOrderStatusQuery) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	id := query.OrderID()

	if h.cache != nil {
		status, ok, err := h.cache.Get(ctx, id)
		switch {
		case err != nil:
			h.logger.WarnContext(ctx, "status cache read failed", "order_id", id.String(), "error", err)
		case ok:
			return GetOrderStatusQueryResponse{ID: id, Status: status.String(), Cached: true}, nil
		}
	}

	var raw int
	var updatedAt time.Time
	err := h.db.WithContext(ctx).
		Raw(`SELECT status, updated_at FROM orders WHERE id = ?`, id.Bytes()).
		Row().
		Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	status := order.Status(raw)
	if h.cache != nil {
		if setErr := h.cache.Set(ctx, id, status, updatedAt); setErr != nil {
			h.logger.WarnContext(ctx, "status cache write failed", "order_id", id.String(), "error", setErr)
		}
	}

	return GetOrderStatusQueryResponse{ID: id, Status: status.String(), UpdatedAt: updatedAt.UTC()}, nil
}
