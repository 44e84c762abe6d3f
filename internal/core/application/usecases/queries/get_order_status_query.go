package queries

import (
	"errors"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery reads the current status of one order.
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}
	return GetOrderStatusQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderStatusQueryResponse struct {
	ID     kernel.UUID `json:"id"`
	Status string      `json:"status"`
	// UpdatedAt is zero when the answer came from the cache.
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
	Cached    bool      `json:"cached"`
}
