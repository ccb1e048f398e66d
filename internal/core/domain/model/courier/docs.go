// Package courier implements the Courier aggregate: a delivery agent with a
// live position and an availability status.
//
// Key business rules:
//   - couriers start Available
//   - TakeOrder moves Available to Busy, Release moves Busy back to Available
//   - Available and Offline toggle freely, Busy cannot go offline
//   - Offline couriers are never moved by Drift
package courier
