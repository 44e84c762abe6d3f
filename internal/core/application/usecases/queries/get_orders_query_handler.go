package queries

import (
	"context"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns orders by delivery date, then PO number. Supplier names
// match case-insensitively.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			po_number,
			factory_name,
			customer_name,
			category,
			status,
			delivery_date,
			revision_count,
			updated_at,
			updated_by
		FROM orders
		WHERE @supplier = '' OR lower(factory_name) = lower(@supplier)
		ORDER BY delivery_date, po_number
	`, map[string]any{"supplier": query.SupplierName()}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetOrdersQueryResponse
		var id uuid.UUID
		var category, status int

		err = rows.Scan(
			&id,
			&row.PONumber,
			&row.FactoryName,
			&row.CustomerName,
			&category,
			&status,
			&row.DeliveryDate,
			&row.RevisionCount,
			&row.UpdatedAt,
			&row.UpdatedBy,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = orderID
		row.Category = order.Category(category).String()
		row.Status = order.Status(status).String()
		row.DeliveryDate = row.DeliveryDate.UTC()
		row.UpdatedAt = row.UpdatedAt.UTC()
		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
