package queries

import (
	"context"
	"database/sql"
	"errors"

	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GetOrderRevisionsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderRevisionsQueryHandler(db *gorm.DB) GetOrderRevisionsQueryHandler {
	return GetOrderRevisionsQueryHandler{db: db}
}

// Handle returns revisions oldest first, numbered from 1.
func (h GetOrderRevisionsQueryHandler) Handle(ctx context.Context, query GetOrderRevisionsQuery) ([]order.Revision, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var revisions datatypes.JSONSlice[order.Revision]
	err := h.db.WithContext(ctx).
		Raw(`SELECT revisions FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Row().
		Scan(&revisions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return nil, err
	}

	if revisions == nil {
		return []order.Revision{}, nil
	}
	return revisions, nil
}
