package order

import (
	"fmt"
	"strings"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/pkg/errs"
)

// Status represents the lifecycle state of a wholesale order.
//
// Transitions are role-gated: the set of statuses reachable in one step
// depends on both the current status and the acting role.
//
//	New, Viewed ──┬──> InProduction ──> StockReady ──> ReadyForPickup ──> Completed
//	              ├──> StockReady
//	              ├──> RequestChange ──> WaitingForSupplier ──> (supplier states)
//	              └──> UnableToFulfill
//	(any non-terminal) ──> Cancelled (coordinator)
//
// Viewed is never a requested target. It is entered when a supplier first
// opens a New order (see Order.MarkViewed) and whenever an accepted content
// edit is applied (see Order.ApplyRevision).
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// New is the initial status of every order.
	New

	// Viewed means the supplier has opened the order, or the order content was
	// edited and must be reviewed again.
	Viewed

	// RequestChange means the supplier asked the coordinator to change the order.
	RequestChange

	// InProduction means the supplier is manufacturing the goods.
	InProduction

	// StockReady means the goods are available at the supplier.
	StockReady

	// UnableToFulfill means the supplier cannot deliver the order.
	UnableToFulfill

	// WaitingForSupplier means the coordinator answered a change request and
	// waits for the supplier to continue.
	WaitingForSupplier

	// ReadyForPickup means the goods can be collected from the supplier.
	ReadyForPickup

	// Completed is terminal: the goods were received.
	Completed

	// Cancelled is terminal: the coordinator withdrew the order.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		New:                "New",
		Viewed:             "Viewed",
		RequestChange:      "RequestChange",
		InProduction:       "InProduction",
		StockReady:         "StockReady",
		UnableToFulfill:    "UnableToFulfill",
		WaitingForSupplier: "WaitingForSupplier",
		ReadyForPickup:     "ReadyForPickup",
		Completed:          "Completed",
		Cancelled:          "Cancelled",
	}
}

// supplierProgress are the statuses a supplier may report while working on an
// order it has accepted or is about to accept.
func supplierProgress() []Status {
	return []Status{InProduction, StockReady, RequestChange, UnableToFulfill}
}

// getTransitions is the role-gated transition table keyed by current status
// and acting role. Statuses and roles that are absent have no transitions.
func getTransitions() map[Status]map[kernel.Role][]Status {
	return map[Status]map[kernel.Role][]Status{
		New: {
			kernel.Supplier:    supplierProgress(),
			kernel.Coordinator: {Cancelled},
		},
		Viewed: {
			kernel.Supplier:    supplierProgress(),
			kernel.Coordinator: {Cancelled},
		},
		WaitingForSupplier: {
			kernel.Supplier:    supplierProgress(),
			kernel.Coordinator: {Cancelled},
		},
		InProduction: {
			kernel.Supplier:    {StockReady, RequestChange},
			kernel.Coordinator: {Cancelled},
		},
		RequestChange: {
			kernel.Supplier:    {UnableToFulfill},
			kernel.Coordinator: {WaitingForSupplier, Cancelled},
		},
		UnableToFulfill: {
			kernel.Coordinator: {Cancelled},
		},
		StockReady: {
			kernel.Supplier:    {ReadyForPickup},
			kernel.Coordinator: {ReadyForPickup, Cancelled},
		},
		ReadyForPickup: {
			kernel.Coordinator: {Completed},
		},
	}
}

// ParseStatus maps a status name such as "InProduction" to its Status.
// Matching ignores case.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions exist for any role.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AllowedTransitions returns the statuses role may move an order to from s.
// The result is a fresh slice; it is empty for terminal statuses.
func (s Status) AllowedTransitions(role kernel.Role) []Status {
	allowed := getTransitions()[s][role]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransition reports whether role may move an order from s to target.
func (s Status) CanTransition(role kernel.Role, target Status) bool {
	for _, allowed := range getTransitions()[s][role] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition validates a one-step move and returns the target status.
//
// Returns:
//   - (target, nil) when the table allows it
//   - (Unknown, *errs.InvalidTransitionError) otherwise
func (s Status) Transition(role kernel.Role, target Status) (Status, error) {
	if !s.CanTransition(role, target) {
		return Unknown, errs.NewInvalidTransitionError(s, target, role)
	}
	return target, nil
}
