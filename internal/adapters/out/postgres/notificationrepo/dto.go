// Package notificationrepo stores the notification log. Audience, markers
// and field changes are jsonb columns so ListForRole can filter with @>.
package notificationrepo

import (
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType     string    `gorm:"index"`
	Timestamp     time.Time `gorm:"index"`
	ActorID       string
	ActorRole     string
	EntityType    string `gorm:"index:idx_notifications_entity"`
	EntityID      string `gorm:"index:idx_notifications_entity"`
	DisplayNumber string
	Audience      datatypes.JSONSlice[kernel.Role] `gorm:"type:jsonb"`
	Recipients    datatypes.JSONSlice[string]      `gorm:"type:jsonb"`
	AddressedTo   string
	Originator    string
	Title         string
	Message       string
	Changes       datatypes.JSONSlice[notification.FieldChange] `gorm:"type:jsonb"`
	Metadata      datatypes.JSONType[map[string]string]         `gorm:"type:jsonb"`
	ReadBy        datatypes.JSONSlice[string]                   `gorm:"type:jsonb"`
	RemovedBy     datatypes.JSONSlice[string]                   `gorm:"type:jsonb"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	p := n.Params()
	return NotificationDTO{
		ID:            p.ID.Bytes(),
		EventType:     p.EventType.String(),
		Timestamp:     p.Timestamp,
		ActorID:       p.Actor.ID,
		ActorRole:     p.Actor.Role.String(),
		EntityType:    string(p.Entity.Type),
		EntityID:      p.Entity.ID,
		DisplayNumber: p.Entity.DisplayNumber,
		Audience:      nonNil(p.Audience),
		Recipients:    nonNil(p.Recipients),
		AddressedTo:   p.AddressedTo,
		Originator:    p.Originator,
		Title:         p.Title,
		Message:       p.Message,
		Changes:       nonNil(p.Changes),
		Metadata:      datatypes.NewJSONType(p.Metadata),
		ReadBy:        nonNil(n.ReadBy()),
		RemovedBy:     nonNil(n.RemovedBy()),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	eventType, err := notification.ParseEventType(dto.EventType)
	if err != nil {
		return nil, err
	}
	role, err := kernel.ParseRole(dto.ActorRole)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(notification.Params{
		ID:        id,
		EventType: eventType,
		Timestamp: dto.Timestamp.UTC(),
		Actor:     kernel.Actor{ID: dto.ActorID, Role: role},
		Entity: notification.EntityRef{
			Type:          notification.EntityType(dto.EntityType),
			ID:            dto.EntityID,
			DisplayNumber: dto.DisplayNumber,
		},
		Audience:    dto.Audience,
		Recipients:  dto.Recipients,
		AddressedTo: dto.AddressedTo,
		Originator:  dto.Originator,
		Title:       dto.Title,
		Message:     dto.Message,
		Changes:     dto.Changes,
		Metadata:    dto.Metadata.Data(),
	}, dto.ReadBy, dto.RemovedBy)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
