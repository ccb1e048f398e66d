// Package order implements the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: links a customer, a store and (once assigned) a courier
//   - Status: the forward-only state machine Pending -> Assigned -> InTransit -> Delivered
//
// Key business rules:
//   - only Pending orders can be assigned, so a stale assignment fails with errs.ErrStateIsInvalid
//   - Delivered is terminal
//   - a courier is present iff the order left Pending
package order
