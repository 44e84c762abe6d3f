// Package errs provides the typed errors shared by the order lifecycle engine and
// its adapters.
//
// Every error kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct type carrying the details, usable with errors.As
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Kinds:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: a referenced order, request, notification or detail line is absent
//   - InvalidTransitionError: a status is not reachable from the current status for the acting role
//   - StaleWriteError: the optimistic concurrency check failed; re-read and retry
package errs
