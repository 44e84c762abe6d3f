// Package services holds the domain services of the order engine. Each one
// works on a single Order aggregate (or its detail lines) and is synchronous
// and free of I/O; persistence and delivery are the application layer's job.
//
// The package includes:
//   - ItemConsolidator: normalizes and merges detail-line edits
//   - StatusMachine: validates and applies status transitions
//   - RevisionRecorder: computes and appends audit revisions
//   - NotificationEmitter: builds audience-targeted notifications
package services
