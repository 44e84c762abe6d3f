// Package request models customer requests raised by sales. Orders may be
// converted from a request; the order service only reads them.
package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

type Status int

const (
	Unknown Status = iota
	Pending
	Viewed
	Approved
	Rejected
	Converted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Viewed:    "Viewed",
		Approved:  "Approved",
		Rejected:  "Rejected",
		Converted: "Converted",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("request status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("request status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Request is a customer request for goods, raised by a sales actor.
type Request struct {
	id        kernel.UUID
	number    string
	status    Status
	createdBy string
	customer  kernel.Reference
	category  order.Category
	createdAt time.Time

	isConstructed bool
}

// Snapshot is the persistent form of a Request.
type Snapshot struct {
	ID        kernel.UUID
	Number    string
	Status    Status
	CreatedBy string
	Customer  kernel.Reference
	Category  order.Category
	CreatedAt time.Time
}

// NewRequest creates a Pending request.
func NewRequest(id kernel.UUID, number string, creator kernel.Actor, customer kernel.Reference,
	category order.Category, at time.Time,
) (*Request, error) {
	if err := creator.Validate(); err != nil {
		return nil, err
	}
	return RestoreRequest(Snapshot{
		ID:        id,
		Number:    number,
		Status:    Pending,
		CreatedBy: creator.ID,
		Customer:  customer,
		Category:  category,
		CreatedAt: at,
	})
}

// RestoreRequest rebuilds a request from persistence.
func RestoreRequest(s Snapshot) (*Request, error) {
	var numberErr, creatorErr, atErr error
	if strings.TrimSpace(s.Number) == "" {
		numberErr = errs.NewValueIsRequiredError("request number")
	}
	if strings.TrimSpace(s.CreatedBy) == "" {
		creatorErr = errs.NewValueIsRequiredError("request createdBy")
	}
	if s.CreatedAt.IsZero() {
		atErr = errs.NewValueIsRequiredError("request createdAt")
	}
	if err := errors.Join(s.ID.Validate(), numberErr, s.Status.Validate(), creatorErr, s.Category.Validate(), atErr); err != nil {
		return nil, err
	}

	return &Request{
		id:            s.ID,
		number:        strings.TrimSpace(s.Number),
		status:        s.Status,
		createdBy:     strings.TrimSpace(s.CreatedBy),
		customer:      s.Customer,
		category:      s.Category,
		createdAt:     s.CreatedAt,
		isConstructed: true,
	}, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID            { return r.id }
func (r *Request) Number() string             { return r.number }
func (r *Request) Status() Status             { return r.status }
func (r *Request) Customer() kernel.Reference { return r.customer }
func (r *Request) Category() order.Category   { return r.category }
func (r *Request) CreatedAt() time.Time       { return r.createdAt }

// CreatedBy is the sales actor id that raised the request. Request
// notifications are addressed back to this originator.
func (r *Request) CreatedBy() string { return r.createdBy }

func (r *Request) Snapshot() Snapshot {
	return Snapshot{
		ID:        r.id,
		Number:    r.number,
		Status:    r.status,
		CreatedBy: r.createdBy,
		Customer:  r.customer,
		Category:  r.category,
		CreatedAt: r.createdAt,
	}
}
