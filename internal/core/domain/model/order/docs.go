// Package order provides the Order aggregate of the wholesale jewelry order
// service together with its value types.
//
// The package includes:
//   - Order: the aggregate root holding header, content, status and revisions
//   - Status: the role-gated lifecycle table
//   - DetailItem and ParseWeightSpec: product lines and berat range expansion
//   - FieldSet and Revision: the optional-field audit record of content edits
//
// Key business rules:
//   - Orders are created in New by a coordinator and never deleted
//   - Status changes follow the table in status.go and record no revision
//   - Every content edit appends exactly one revision and forces Viewed
//   - basic orders need a berat on every line, model orders need kadar, warna
//     and pcs > 0 on every line
package order
