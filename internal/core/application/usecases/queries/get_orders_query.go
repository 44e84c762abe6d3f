// Package queries contains read operations. Order reads go straight to the
// database with SQL; inbox reads filter the notification log per actor.
package queries

import (
	"errors"
	"strings"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders, optionally only those placed with one
// supplier factory. Terminal orders are included.
type GetOrdersQuery struct {
	supplierName string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates the query. An empty supplierName lists every order.
func NewGetOrdersQuery(supplierName string) GetOrdersQuery {
	return GetOrdersQuery{
		supplierName: strings.TrimSpace(supplierName),
		guard:        guard.NewConstructorGuard(),
	}
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) SupplierName() string {
	return q.supplierName
}

// GetOrdersQueryResponse is one row of the order list.
type GetOrdersQueryResponse struct {
	ID            kernel.UUID `json:"id"`
	PONumber      string      `json:"poNumber"`
	FactoryName   string      `json:"factoryName"`
	CustomerName  string      `json:"customerName"`
	Category      string      `json:"category"`
	Status        string      `json:"status"`
	DeliveryDate  time.Time   `json:"deliveryDate"`
	RevisionCount int         `json:"revisionCount"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	UpdatedBy     string      `json:"updatedBy"`
}
