package queries

import (
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/guard"
)

var ErrGetOrderRevisionsQueryIsNotConstructed = errors.New(
	"GetOrderRevisionsQuery must be created via NewGetOrderRevisionsQuery constructor",
)

// GetOrderRevisionsQuery returns the revision history of one order.
type GetOrderRevisionsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderRevisionsQuery(orderID kernel.UUID) (GetOrderRevisionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderRevisionsQuery{}, err
	}
	return GetOrderRevisionsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderRevisionsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderRevisionsQueryIsNotConstructed)
}

func (q GetOrderRevisionsQuery) OrderID() kernel.UUID {
	return q.orderID
}
