package order

import (
	"errors"
	"fmt"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/errs"
)

// Revision is one audited content edit of an order.
//
// Changes holds the proposed values of every field the editor submitted, not
// only the ones that differ. PreviousValues holds the persisted values of the
// same fields at the moment the revision was computed.
type Revision struct {
	Number         int          `json:"number"`
	At             time.Time    `json:"at"`
	Actor          kernel.Actor `json:"actor"`
	Changes        FieldSet     `json:"changes"`
	PreviousValues FieldSet     `json:"previousValues"`
}

func (r Revision) Validate() error {
	var numberErr, atErr, changesErr, presenceErr error
	if r.Number < 1 {
		numberErr = errs.NewValueIsOutOfRangeError("revision number", r.Number, 1, "unbounded")
	}
	if r.At.IsZero() {
		atErr = errs.NewValueIsRequiredError("revision timestamp")
	}
	if r.Changes.IsEmpty() {
		changesErr = errs.NewValueIsRequiredError("revision changes")
	}
	if !r.Changes.SamePresence(r.PreviousValues) {
		presenceErr = errs.NewValueIsInvalidErrorWithCause("revision previous values",
			fmt.Errorf("fields %v do not match changed fields %v", r.PreviousValues.Fields(), r.Changes.Fields()))
	}
	return errors.Join(numberErr, atErr, r.Actor.Validate(), changesErr, presenceErr)
}

// ChangedFields lists the submitted fields whose value actually differs from
// the previous one.
func (r Revision) ChangedFields() []Field {
	var changed []Field
	for _, f := range r.Changes.Fields() {
		if !r.Changes.Equal(r.PreviousValues, f) {
			changed = append(changed, f)
		}
	}
	return changed
}

func (r Revision) Clone() Revision {
	r.Changes = r.Changes.Clone()
	r.PreviousValues = r.PreviousValues.Clone()
	return r
}

func cloneRevisions(revs []Revision) []Revision {
	out := make([]Revision, len(revs))
	for i, r := range revs {
		out[i] = r.Clone()
	}
	return out
}
