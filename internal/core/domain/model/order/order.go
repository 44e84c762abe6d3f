package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Header carries the order fields that are fixed at creation.
type Header struct {
	ID           kernel.UUID
	PONumber     string
	RequestID    *kernel.UUID
	Factory      kernel.Reference
	Customer     kernel.Reference
	DeliveryDate time.Time
}

// Order is the aggregate root of a wholesale jewelry order placed by a
// coordinator with a supplier factory.
//
// Order follows these invariants:
//   - It starts in New with its initial detail lines and no revisions
//   - Detail line ids and (kadar, warna, ukuran, berat) keys are unique
//   - Revision numbers are 1, 2, 3... without gaps
//   - Every appended revision forces the status to Viewed
//   - Neither the order nor its revisions are ever deleted
type Order struct {
	id           kernel.UUID
	poNumber     string
	requestID    *kernel.UUID
	factory      kernel.Reference
	customer     kernel.Reference
	deliveryDate time.Time

	status  Status
	content Content

	createdAt time.Time
	createdBy string
	updatedAt time.Time
	updatedBy string

	revisions []Revision

	isConstructed bool
}

// NewOrder creates an order in status New. Only a coordinator may create one.
//
// The items are stored as given; callers consolidate them first.
func NewOrder(header Header, content Content, creator kernel.Actor, at time.Time) (*Order, error) {
	if err := creator.Validate(); err != nil {
		return nil, err
	}
	if creator.Role != kernel.Coordinator {
		return nil, errs.NewValueIsInvalidErrorWithCause("creator",
			fmt.Errorf("role %s may not create orders", creator.Role))
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	o := &Order{
		status:        New,
		createdAt:     at,
		createdBy:     creator.ID,
		updatedAt:     at,
		updatedBy:     creator.ID,
		revisions:     []Revision{},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setHeader(header),
		o.setContent(content),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flat persistent form of an Order.
type Snapshot struct {
	Header
	Content
	Status    Status
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	Revisions []Revision
}

// RestoreOrder rebuilds an order from persistence. Content rules are not
// re-applied so historical rows stay loadable after rule changes.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:     s.CreatedAt,
		createdBy:     s.CreatedBy,
		updatedAt:     s.UpdatedAt,
		updatedBy:     s.UpdatedBy,
		isConstructed: true,
	}
	if err := errors.Join(o.setHeader(s.Header), s.Status.Validate(), s.Category.Validate()); err != nil {
		return nil, err
	}
	for i, r := range s.Revisions {
		if r.Number != i+1 {
			return nil, errs.NewValueIsInvalidErrorWithCause("revisions",
				fmt.Errorf("revision at position %d has number %d", i+1, r.Number))
		}
	}

	o.status = s.Status
	o.content = s.Content
	o.content.Items = nonNilItems(CloneItems(s.Items))
	o.revisions = cloneRevisions(s.Revisions)
	return o, nil
}

// Snapshot returns a deep copy of the order state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		Header:    o.Header(),
		Content:   o.Content(),
		Status:    o.status,
		CreatedAt: o.createdAt,
		CreatedBy: o.createdBy,
		UpdatedAt: o.updatedAt,
		UpdatedBy: o.updatedBy,
		Revisions: cloneRevisions(o.revisions),
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) PONumber() string {
	return o.poNumber
}

// RequestID is the customer request the order was converted from, if any.
func (o *Order) RequestID() *kernel.UUID {
	if o.requestID == nil {
		return nil
	}
	id := *o.requestID
	return &id
}

func (o *Order) Factory() kernel.Reference {
	return o.factory
}

func (o *Order) Customer() kernel.Reference {
	return o.customer
}

func (o *Order) DeliveryDate() time.Time {
	return o.deliveryDate
}

func (o *Order) Header() Header {
	return Header{
		ID:           o.id,
		PONumber:     o.poNumber,
		RequestID:    o.RequestID(),
		Factory:      o.factory,
		Customer:     o.customer,
		DeliveryDate: o.deliveryDate,
	}
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Category() Category {
	return o.content.Category
}

func (o *Order) ProductType() string {
	return o.content.ProductType
}

func (o *Order) BasicName() string {
	return o.content.BasicName
}

func (o *Order) ModelName() string {
	return o.content.ModelName
}

func (o *Order) PhotoID() string {
	return o.content.PhotoID
}

// Items returns a copy of the detail lines.
func (o *Order) Items() []DetailItem {
	return nonNilItems(CloneItems(o.content.Items))
}

// Content returns a copy of the editable fields.
func (o *Order) Content() Content {
	c := o.content
	c.Items = o.Items()
	return c
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) CreatedBy() string {
	return o.createdBy
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) UpdatedBy() string {
	return o.updatedBy
}

// Revisions returns a copy of the revision history, oldest first.
func (o *Order) Revisions() []Revision {
	return cloneRevisions(o.revisions)
}

func (o *Order) RevisionCount() int {
	return len(o.revisions)
}

// CurrentFields reads the persisted values of the given fields.
func (o *Order) CurrentFields(fields []Field) FieldSet {
	all := o.content.Fields()
	var fs FieldSet
	for _, f := range fields {
		switch f {
		case FieldCategory:
			fs.Category = all.Category
		case FieldProductType:
			fs.ProductType = all.ProductType
		case FieldBasicName:
			fs.BasicName = all.BasicName
		case FieldModelName:
			fs.ModelName = all.ModelName
		case FieldItems:
			fs.Items = all.Items
		case FieldPhotoID:
			fs.PhotoID = all.PhotoID
		}
	}
	return fs
}

// CheckFreshness compares the revision count a caller last saw with the
// current one. A negative lastSeen skips the check.
func (o *Order) CheckFreshness(lastSeen int) error {
	if lastSeen < 0 || lastSeen == len(o.revisions) {
		return nil
	}
	return errs.NewStaleWriteError("order", lastSeen, len(o.revisions))
}

// ChangeStatus moves the order along the transition table. On failure the
// order is left unchanged. No revision is recorded.
func (o *Order) ChangeStatus(actor kernel.Actor, target Status, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	next, err := o.status.Transition(actor.Role, target)
	if err != nil {
		return err
	}

	o.status = next
	o.touch(actor.ID, at)
	return nil
}

// MarkViewed records that a supplier opened a New order. It reports whether
// the status changed; views by other roles or of other statuses are no-ops.
func (o *Order) MarkViewed(actor kernel.Actor, at time.Time) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}
	if actor.Role != kernel.Supplier || o.status != New {
		return false, nil
	}

	o.status = Viewed
	o.touch(actor.ID, at)
	return true, nil
}

// ApplyRevision validates the content that results from rev and, if valid,
// applies it, appends rev and forces the status to Viewed whatever the
// current status or the editor's role. updatedAt becomes at, which may be
// later than rev.At when the revision was computed ahead of the append.
//
// A revision whose number is not RevisionCount()+1 was computed against an
// older state and fails with *errs.StaleWriteError.
func (o *Order) ApplyRevision(rev Revision, at time.Time) error {
	if rev.Number != len(o.revisions)+1 {
		return errs.NewStaleWriteError("order", rev.Number-1, len(o.revisions))
	}
	if err := rev.Validate(); err != nil {
		return err
	}

	next := o.content.Apply(rev.Changes)
	if err := next.Validate(); err != nil {
		return err
	}

	o.content = next
	o.revisions = append(o.revisions, rev.Clone())
	o.status = Viewed
	o.touch(rev.Actor.ID, at)
	return nil
}

// RecordArrival stores how many pieces of each line physically arrived.
// Only a coordinator may record it and only for an order ready for pickup.
// Lines not mentioned keep their previous value.
func (o *Order) RecordArrival(actor kernel.Actor, arrived map[string]int, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role != kernel.Coordinator {
		return errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("role %s may not record arrivals", actor.Role))
	}
	if o.status != ReadyForPickup {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("arrival can only be recorded in %s, order is %s", ReadyForPickup, o.status))
	}
	if len(arrived) == 0 {
		return errs.NewValueIsRequiredError("arrived pieces")
	}

	items := CloneItems(o.content.Items)
	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.ID] = i
	}
	for id, pcs := range arrived {
		i, ok := index[id]
		if !ok {
			return errs.NewObjectNotFoundError("detail item", id)
		}
		if pcs < 0 {
			return errs.NewValueIsOutOfRangeError("availablePcs", pcs, 0, "unbounded")
		}
		available := pcs
		ordered := items[i].Pcs
		items[i].AvailablePcs = &available
		items[i].OrderPcs = &ordered
	}

	o.content.Items = items
	o.touch(actor.ID, at)
	return nil
}

func (o *Order) touch(actorID string, at time.Time) {
	o.updatedAt = at
	o.updatedBy = actorID
}

func (o *Order) setHeader(h Header) error {
	var poErr, factoryErr, dateErr error
	if strings.TrimSpace(h.PONumber) == "" {
		poErr = errs.NewValueIsRequiredError("poNumber")
	}
	if strings.TrimSpace(h.Factory.Name) == "" {
		factoryErr = errs.NewValueIsRequiredError("factory name")
	}
	if h.DeliveryDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("deliveryDate")
	}
	var requestErr error
	if h.RequestID != nil {
		requestErr = h.RequestID.Validate()
	}
	if err := errors.Join(h.ID.Validate(), poErr, factoryErr, dateErr, requestErr); err != nil {
		return err
	}

	o.id = h.ID
	o.poNumber = strings.TrimSpace(h.PONumber)
	if h.RequestID != nil {
		id := *h.RequestID
		o.requestID = &id
	}
	o.factory = kernel.Reference{ID: strings.TrimSpace(h.Factory.ID), Name: strings.TrimSpace(h.Factory.Name)}
	o.customer = kernel.Reference{ID: strings.TrimSpace(h.Customer.ID), Name: strings.TrimSpace(h.Customer.Name)}
	o.deliveryDate = h.DeliveryDate
	return nil
}

func (o *Order) setContent(c Content) error {
	c = Content{}.Apply(c.Fields())
	if err := c.Validate(); err != nil {
		return err
	}
	o.content = c
	return nil
}
