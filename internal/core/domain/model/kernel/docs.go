// Package kernel provides the value objects shared by every aggregate of the
// dispatch domain.
//
// The package includes:
//   - Location: a validated latitude/longitude pair with Offset for movement
//   - Distance and FormatDistance: haversine great-circle distance in kilometres
//   - ID: "{kind}_{uuidv7}" identifiers for stores, couriers, customers and orders
//
// All types are immutable and safe for concurrent use.
package kernel
