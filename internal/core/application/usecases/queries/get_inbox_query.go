package queries

import (
	"errors"
	"strings"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/pkg/guard"
)

var ErrGetInboxQueryIsNotConstructed = errors.New(
	"GetInboxQuery must be created via NewGetInboxQuery constructor",
)

// GetInboxQuery lists the notifications visible to one actor. Suppliers
// pass the name of the factory they work for.
type GetInboxQuery struct {
	actor        kernel.Actor
	supplierName string

	guard guard.ConstructorGuard
}

func NewGetInboxQuery(actor kernel.Actor, supplierName string) (GetInboxQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetInboxQuery{}, err
	}
	return GetInboxQuery{
		actor:        actor,
		supplierName: strings.TrimSpace(supplierName),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetInboxQuery) Validate() error {
	return q.guard.Validate(ErrGetInboxQueryIsNotConstructed)
}

func (q GetInboxQuery) Actor() kernel.Actor  { return q.actor }
func (q GetInboxQuery) SupplierName() string { return q.supplierName }

type InboxItem struct {
	ID        kernel.UUID                `json:"id"`
	EventType notification.EventType     `json:"eventType"`
	Timestamp time.Time                  `json:"timestamp"`
	Actor     kernel.Actor               `json:"actor"`
	Entity    notification.EntityRef     `json:"entity"`
	Title     string                     `json:"title"`
	Message   string                     `json:"message"`
	Changes   []notification.FieldChange `json:"changes,omitempty"`
	Metadata  map[string]string          `json:"metadata,omitempty"`
	Read      bool                       `json:"read"`
}

type GetInboxQueryResponse struct {
	Items  []InboxItem `json:"items"`
	Unread int         `json:"unread"`
}
