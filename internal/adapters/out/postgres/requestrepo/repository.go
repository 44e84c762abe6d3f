// Package requestrepo reads customer requests. Requests are written by the
// sales side of the business; Save exists for seeding and imports.
package requestrepo

import (
	"context"
	"errors"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/model/request"
	"jewelryorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"index"`
	Status       int
	CreatedBy    string `gorm:"index"`
	CustomerID   string
	CustomerName string
	Category     int
	CreatedAt    time.Time
}

func (RequestDTO) TableName() string {
	return "requests"
}

func fromDomain(r *request.Request) RequestDTO {
	s := r.Snapshot()
	return RequestDTO{
		ID:           s.ID.Bytes(),
		Number:       s.Number,
		Status:       int(s.Status),
		CreatedBy:    s.CreatedBy,
		CustomerID:   s.Customer.ID,
		CustomerName: s.Customer.Name,
		Category:     int(s.Category),
		CreatedAt:    s.CreatedAt,
	}
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return request.RestoreRequest(request.Snapshot{
		ID:        id,
		Number:    dto.Number,
		Status:    request.Status(dto.Status),
		CreatedBy: dto.CreatedBy,
		Customer:  kernel.Reference{ID: dto.CustomerID, Name: dto.CustomerName},
		Category:  order.Category(dto.Category),
		CreatedAt: dto.CreatedAt.UTC(),
	})
}

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) Load(ctx context.Context) ([]*request.Request, error) {
	var dtos []RequestDTO
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	reqs := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Save upserts requests by id.
func (r *GormRequestRepository) Save(ctx context.Context, reqs ...*request.Request) error {
	if len(reqs) == 0 {
		return nil
	}

	dtos := make([]RequestDTO, 0, len(reqs))
	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(req))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&dtos).Error
}
