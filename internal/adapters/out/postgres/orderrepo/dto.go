// Package orderrepo persists order aggregates. Detail lines and the revision
// log are stored as jsonb columns on the orders row.
package orderrepo

import (
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PONumber     string     `gorm:"column:po_number;index"`
	RequestID    *uuid.UUID `gorm:"type:uuid;index"`
	FactoryID    string
	FactoryName  string `gorm:"index"`
	CustomerID   string
	CustomerName string
	DeliveryDate time.Time `gorm:"index"`

	Category    int
	ProductType string
	BasicName   string
	ModelName   string
	PhotoID     string
	Items       datatypes.JSONSlice[order.DetailItem] `gorm:"type:jsonb"`

	Status        int `gorm:"index"`
	CreatedAt     time.Time
	CreatedBy     string
	UpdatedAt     time.Time
	UpdatedBy     string
	Revisions     datatypes.JSONSlice[order.Revision] `gorm:"type:jsonb"`
	RevisionCount int
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	var requestID *uuid.UUID
	if s.RequestID != nil {
		raw := s.RequestID.Bytes()
		requestID = &raw
	}

	items := s.Items
	if items == nil {
		items = []order.DetailItem{}
	}
	revisions := s.Revisions
	if revisions == nil {
		revisions = []order.Revision{}
	}

	return OrderDTO{
		ID:            s.ID.Bytes(),
		PONumber:      s.PONumber,
		RequestID:     requestID,
		FactoryID:     s.Factory.ID,
		FactoryName:   s.Factory.Name,
		CustomerID:    s.Customer.ID,
		CustomerName:  s.Customer.Name,
		DeliveryDate:  s.DeliveryDate,
		Category:      int(s.Category),
		ProductType:   s.ProductType,
		BasicName:     s.BasicName,
		ModelName:     s.ModelName,
		PhotoID:       s.PhotoID,
		Items:         items,
		Status:        int(s.Status),
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		UpdatedAt:     s.UpdatedAt,
		UpdatedBy:     s.UpdatedBy,
		Revisions:     revisions,
		RevisionCount: len(revisions),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var requestID *kernel.UUID
	if dto.RequestID != nil {
		rID, reqErr := kernel.UUIDFromBytes((*dto.RequestID)[:])
		if reqErr != nil {
			return nil, reqErr
		}
		requestID = &rID
	}

	return order.RestoreOrder(order.Snapshot{
		Header: order.Header{
			ID:           id,
			PONumber:     dto.PONumber,
			RequestID:    requestID,
			Factory:      kernel.Reference{ID: dto.FactoryID, Name: dto.FactoryName},
			Customer:     kernel.Reference{ID: dto.CustomerID, Name: dto.CustomerName},
			DeliveryDate: dto.DeliveryDate.UTC(),
		},
		Content: order.Content{
			Category:    order.Category(dto.Category),
			ProductType: dto.ProductType,
			BasicName:   dto.BasicName,
			ModelName:   dto.ModelName,
			PhotoID:     dto.PhotoID,
			Items:       dto.Items,
		},
		Status:    order.Status(dto.Status),
		CreatedAt: dto.CreatedAt.UTC(),
		CreatedBy: dto.CreatedBy,
		UpdatedAt: dto.UpdatedAt.UTC(),
		UpdatedBy: dto.UpdatedBy,
		Revisions: dto.Revisions,
	})
}
