package services

import (
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
)

// StatusMachine applies role-gated status transitions to orders.
//
// Business rules:
//   - The acting role and the current status decide the reachable statuses
//   - A rejected transition leaves the order untouched
//   - A successful transition stamps updatedAt and updatedBy and records no revision
//
// Example usage:
//
//	machine := NewStatusMachine(kernel.SystemClock)
//	_, err := machine.ApplyTransition(o, supplier, order.InProduction, seenRevisions)
//	if errors.Is(err, errs.ErrStaleWrite) {
//	    // reload and retry
//	}
type StatusMachine struct {
	clock kernel.Clock
}

func NewStatusMachine(clock kernel.Clock) StatusMachine {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return StatusMachine{clock: clock}
}

// ApplyTransition moves o to requested on behalf of actor.
//
// lastSeenRevisions is the revision count the caller based its decision on;
// when it is non-negative and differs from the order's count the call fails
// with *errs.StaleWriteError. Pass a negative value to skip the check.
//
// Returns the same order pointer on success.
func (m StatusMachine) ApplyTransition(o *order.Order, actor kernel.Actor, requested order.Status,
	lastSeenRevisions int,
) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.CheckFreshness(lastSeenRevisions); err != nil {
		return nil, err
	}
	if err := o.ChangeStatus(actor, requested, m.clock()); err != nil {
		return nil, err
	}
	return o, nil
}
