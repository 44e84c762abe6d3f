package notificationrepo

import (
	"context"
	"encoding/json"
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Append inserts n. A row with the same id is left untouched.
func (r *GormNotificationRepository) Append(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&dto).Error
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Update writes the read and removed markers only. The rest of a
// notification never changes after Append.
func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"read_by": dto.ReadBy, "removed_by": dto.RemovedBy})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}
	return nil
}

func (r *GormNotificationRepository) ListForRole(ctx context.Context, role kernel.Role) ([]*notification.Notification, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	contains, err := json.Marshal([]kernel.Role{role})
	if err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err = r.db.WithContext(ctx).
		Where("audience @> ?::jsonb", string(contains)).
		Order("timestamp DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	ns := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		ns = append(ns, n)
	}
	return ns, nil
}
