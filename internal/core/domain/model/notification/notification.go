package notification

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

type EntityType string

const (
	EntityOrder   EntityType = "order"
	EntityRequest EntityType = "request"
)

// EntityRef points at the order or request an event is about.
type EntityRef struct {
	Type          EntityType `json:"type"`
	ID            string     `json:"id"`
	DisplayNumber string     `json:"displayNumber"`
}

func (r EntityRef) Validate() error {
	var typeErr, idErr error
	if r.Type != EntityOrder && r.Type != EntityRequest {
		typeErr = errs.NewValueIsInvalidErrorWithCause("entity type", fmt.Errorf("%q is not an entity type", r.Type))
	}
	if strings.TrimSpace(r.ID) == "" {
		idErr = errs.NewValueIsRequiredError("entity id")
	}
	return errors.Join(typeErr, idErr)
}

// FieldChange is one human-readable changed field of a revision event.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// Params groups the construction arguments of a Notification.
type Params struct {
	ID          kernel.UUID
	EventType   EventType
	Timestamp   time.Time
	Actor       kernel.Actor
	Entity      EntityRef
	Audience    []kernel.Role
	Recipients  []string
	AddressedTo string
	Originator  string
	Title       string
	Message     string
	Changes     []FieldChange
	Metadata    map[string]string
}

// Notification is a role-targeted message derived from a domain event.
// Read and removed markers are kept per actor id; removal only hides the
// notification from that actor.
type Notification struct {
	id          kernel.UUID
	eventType   EventType
	timestamp   time.Time
	actor       kernel.Actor
	entity      EntityRef
	audience    []kernel.Role
	recipients  []string
	addressedTo string
	originator  string
	title       string
	message     string
	changes     []FieldChange
	metadata    map[string]string
	readBy      []string
	removedBy   []string

	isConstructed bool
}

func NewNotification(p Params) (*Notification, error) {
	return RestoreNotification(p, nil, nil)
}

// RestoreNotification rebuilds a notification from persistence with its
// read and removed markers.
func RestoreNotification(p Params, readBy, removedBy []string) (*Notification, error) {
	var tsErr, audienceErr error
	if p.Timestamp.IsZero() {
		tsErr = errs.NewValueIsRequiredError("notification timestamp")
	}
	if len(p.Audience) == 0 {
		audienceErr = errs.NewValueIsRequiredError("notification audience")
	}
	for _, r := range p.Audience {
		if err := r.Validate(); err != nil {
			audienceErr = errors.Join(audienceErr, err)
		}
	}
	if err := errors.Join(p.ID.Validate(), p.EventType.Validate(), tsErr, p.Actor.Validate(),
		p.Entity.Validate(), audienceErr); err != nil {
		return nil, err
	}

	audience := slices.Clone(p.Audience)
	slices.Sort(audience)
	audience = slices.Compact(audience)

	metadata := make(map[string]string, len(p.Metadata))
	for k, v := range p.Metadata {
		metadata[k] = v
	}

	return &Notification{
		id:            p.ID,
		eventType:     p.EventType,
		timestamp:     p.Timestamp,
		actor:         p.Actor,
		entity:        p.Entity,
		audience:      audience,
		recipients:    slices.Clone(p.Recipients),
		addressedTo:   strings.TrimSpace(p.AddressedTo),
		originator:    strings.TrimSpace(p.Originator),
		title:         p.Title,
		message:       p.Message,
		changes:       slices.Clone(p.Changes),
		metadata:      metadata,
		readBy:        nonNil(slices.Clone(readBy)),
		removedBy:     nonNil(slices.Clone(removedBy)),
		isConstructed: true,
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID         { return n.id }
func (n *Notification) EventType() EventType    { return n.eventType }
func (n *Notification) Timestamp() time.Time    { return n.timestamp }
func (n *Notification) Actor() kernel.Actor     { return n.actor }
func (n *Notification) Entity() EntityRef       { return n.entity }
func (n *Notification) AddressedTo() string     { return n.addressedTo }
func (n *Notification) Originator() string      { return n.originator }
func (n *Notification) Title() string           { return n.title }
func (n *Notification) Message() string         { return n.message }
func (n *Notification) Audience() []kernel.Role { return slices.Clone(n.audience) }
func (n *Notification) Recipients() []string    { return slices.Clone(n.recipients) }
func (n *Notification) Changes() []FieldChange  { return slices.Clone(n.changes) }
func (n *Notification) ReadBy() []string        { return slices.Clone(n.readBy) }
func (n *Notification) RemovedBy() []string     { return slices.Clone(n.removedBy) }

func (n *Notification) Metadata() map[string]string {
	out := make(map[string]string, len(n.metadata))
	for k, v := range n.metadata {
		out[k] = v
	}
	return out
}

// Params returns the construction arguments, for persistence and transport.
func (n *Notification) Params() Params {
	return Params{
		ID:          n.id,
		EventType:   n.eventType,
		Timestamp:   n.timestamp,
		Actor:       n.actor,
		Entity:      n.entity,
		Audience:    n.Audience(),
		Recipients:  n.Recipients(),
		AddressedTo: n.addressedTo,
		Originator:  n.originator,
		Title:       n.title,
		Message:     n.message,
		Changes:     n.Changes(),
		Metadata:    n.Metadata(),
	}
}

// MarkRead records that actorID has read the notification. It reports
// whether anything changed.
func (n *Notification) MarkRead(actorID string) bool {
	return addOnce(&n.readBy, actorID)
}

// Remove hides the notification from actorID. It reports whether anything
// changed.
func (n *Notification) Remove(actorID string) bool {
	return addOnce(&n.removedBy, actorID)
}

func (n *Notification) IsReadBy(actorID string) bool {
	return slices.Contains(n.readBy, actorID)
}

func (n *Notification) IsRemovedBy(actorID string) bool {
	return slices.Contains(n.removedBy, actorID)
}

// VisibleTo reports whether the notification belongs in actor's inbox.
// supplierName is the factory name a supplier actor works for and is only
// consulted for supplier actors.
//
// Rules:
//   - the actor has not removed it
//   - the actor's role is in the audience
//   - when recipients are listed, the actor id is one of them
//   - order events addressed to a factory are only shown to that factory
//   - request events are only shown to sales actors who raised the request
func (n *Notification) VisibleTo(actor kernel.Actor, supplierName string) bool {
	if n.IsRemovedBy(actor.ID) || !slices.Contains(n.audience, actor.Role) {
		return false
	}
	if len(n.recipients) > 0 && !slices.Contains(n.recipients, actor.ID) {
		return false
	}
	if actor.Role == kernel.Supplier && n.addressedTo != "" &&
		!strings.EqualFold(n.addressedTo, strings.TrimSpace(supplierName)) {
		return false
	}
	if actor.Role == kernel.Sales && n.originator != "" && n.originator != actor.ID {
		return false
	}
	return true
}

func addOnce(list *[]string, actorID string) bool {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" || slices.Contains(*list, actorID) {
		return false
	}
	*list = append(*list, actorID)
	return true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
