package courier

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status is the availability of a courier.
//
//	Available <──> Offline
//	    │  ▲
//	    ▼  │
//	    Busy
//
// Busy is entered by taking an order and left by delivering it. A busy
// courier cannot go offline.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available couriers can be recommended and assigned.
	Available

	// Busy couriers carry exactly one non delivered order.
	Busy

	// Offline couriers are invisible to dispatch and are not moved by the simulator.
	Offline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		Busy:      "busy",
		Offline:   "offline",
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
