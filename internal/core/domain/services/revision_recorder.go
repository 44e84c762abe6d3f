package services

import (
	"fmt"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"
)

// RevisionRecorder turns proposed field edits into audited revisions and
// appends them to orders.
type RevisionRecorder struct {
	clock kernel.Clock
}

func NewRevisionRecorder(clock kernel.Clock) RevisionRecorder {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return RevisionRecorder{clock: clock}
}

// Diff builds the next revision of o from the proposed values. Changes holds
// every proposed field as given and PreviousValues the persisted values of
// the same fields. Only coordinators and suppliers edit orders.
func (r RevisionRecorder) Diff(o *order.Order, proposed order.FieldSet, actor kernel.Actor) (order.Revision, error) {
	if err := o.Validate(); err != nil {
		return order.Revision{}, err
	}
	if err := actor.Validate(); err != nil {
		return order.Revision{}, err
	}
	if actor.Role != kernel.Coordinator && actor.Role != kernel.Supplier {
		return order.Revision{}, errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("role %s may not edit orders", actor.Role))
	}
	if proposed.IsEmpty() {
		return order.Revision{}, errs.NewValueIsRequiredError("proposed changes")
	}

	changes := proposed.Clone()
	return order.Revision{
		Number:         o.RevisionCount() + 1,
		At:             r.clock(),
		Actor:          actor,
		Changes:        changes,
		PreviousValues: o.CurrentFields(changes.Fields()),
	}, nil
}

// Append validates and applies revision to o. The order ends in Viewed,
// updatedBy is the revision's actor and updatedAt the recorder's clock at
// the time of the append.
//
// Errors:
//   - *errs.StaleWriteError when lastSeenRevisions is non-negative and no
//     longer matches, or when the revision number is not count+1
//   - validation errors when the resulting content breaks category rules
//
// On error o is left unchanged.
func (r RevisionRecorder) Append(o *order.Order, revision order.Revision, lastSeenRevisions int) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.CheckFreshness(lastSeenRevisions); err != nil {
		return nil, err
	}
	if err := o.ApplyRevision(revision, r.clock()); err != nil {
		return nil, err
	}
	return o, nil
}
