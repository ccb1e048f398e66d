package courier

import (
	"errors"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery agent tracked by position and availability.
// It is an aggregate root.
//
// Key responsibilities:
//   - Managing courier identity (ID, name)
//   - Tracking the live GPS position and the time it was last updated
//   - Enforcing availability transitions (see Status)
//
// Business rules:
//   - Courier must have a valid courier ID and a non-empty name
//   - New couriers start Available
//   - Only Available couriers can take an order
//   - Offline couriers never move
//
// Example usage:
//
//	location, _ := kernel.NewLocation(33.5850, -7.6100)
//	c, err := courier.NewCourier(kernel.NewID(kernel.KindCourier), "Yassine", location, time.Now())
//	if err != nil {
//	    // Handle construction error
//	}
type Courier struct {
	// id uniquely identifies the courier
	id kernel.ID
	// name is the human-readable name of the courier
	name string
	// location is the last reported GPS position
	location kernel.Location
	// status is the availability of the courier
	status Status
	// lastUpdated is the time location or status last changed
	lastUpdated time.Time
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Available courier.
//
// Parameters:
//   - id: Unique identifier of kind kernel.KindCourier
//   - name: Human-readable name (must not be blank)
//   - location: Initial position (must be a constructed location)
//   - now: creation time, recorded as LastUpdated
//
// Returns:
//   - *Courier: A courier ready to be dispatched
//   - error: Validation errors aggregated with errors.Join
func NewCourier(id kernel.ID, name string, location kernel.Location, now time.Time) (*Courier, error) {
	courier := &Courier{
		status:      Available,
		lastUpdated: now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setLocation(location),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by ID.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id == other.id
}

// Validate checks if the Courier was properly constructed using the NewCourier constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.ID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Location returns the last reported position of the courier.
func (c *Courier) Location() kernel.Location {
	return c.location
}

// Status returns the availability of the courier.
func (c *Courier) Status() Status {
	return c.status
}

// LastUpdated returns the time of the last position or status change.
func (c *Courier) LastUpdated() time.Time {
	return c.lastUpdated
}

// IsAvailable reports whether the courier can be recommended and assigned.
func (c *Courier) IsAvailable() bool {
	return c.status == Available
}

// IsOffline reports whether the courier is out of service.
func (c *Courier) IsOffline() bool {
	return c.status == Offline
}

// Drift shifts the courier by (dLat, dLng) degrees and stamps LastUpdated.
// It models GPS jitter, not travel towards a destination.
//
// Returns:
//   - error: errs.StateIsInvalidError for offline couriers, or the location
//     validation error when the shift leaves the valid coordinate range.
//     On error the courier is unchanged.
//
// Example:
//
//	if !c.IsOffline() {
//	    _ = c.Drift(0.00004, -0.00009, time.Now())
//	}
func (c *Courier) Drift(dLat, dLng float64, at time.Time) error {
	if c.status == Offline {
		return errs.NewStateIsInvalidError("courier", c.status.String(), "move")
	}

	moved, err := c.location.Offset(dLat, dLng)
	if err != nil {
		return err
	}

	c.location = moved
	c.lastUpdated = at
	return nil
}

// TakeOrder marks the courier busy.
//
// Returns:
//   - error: errs.ObjectIsUnavailableError unless the courier is Available
func (c *Courier) TakeOrder(at time.Time) error {
	if c.status != Available {
		return errs.NewObjectIsUnavailableError("courierId", c.id, c.status.String())
	}

	c.status = Busy
	c.lastUpdated = at
	return nil
}

// Release returns a busy courier to the pool after delivery.
func (c *Courier) Release(at time.Time) error {
	if c.status != Busy {
		return errs.NewStateIsInvalidError("courier", c.status.String(), "release")
	}

	c.status = Available
	c.lastUpdated = at
	return nil
}

// GoOffline takes an available courier out of service. It is a no-op for an
// offline courier and fails with errs.StateIsInvalidError for a busy one.
func (c *Courier) GoOffline(at time.Time) error {
	switch c.status {
	case Offline:
		return nil
	case Available:
		c.status = Offline
		c.lastUpdated = at
		return nil
	default:
		return errs.NewStateIsInvalidError("courier", c.status.String(), "take offline")
	}
}

// GoOnline makes an offline courier available again. It is a no-op for an
// available courier and fails with errs.StateIsInvalidError for a busy one.
func (c *Courier) GoOnline(at time.Time) error {
	switch c.status {
	case Available:
		return nil
	case Offline:
		c.status = Available
		c.lastUpdated = at
		return nil
	default:
		return errs.NewStateIsInvalidError("courier", c.status.String(), "bring online")
	}
}

// Clone returns an independent copy of the courier.
func (c *Courier) Clone() *Courier {
	cp := *c
	return &cp
}

func (c *Courier) setID(id kernel.ID) error {
	if err := id.ValidateKind(kernel.KindCourier); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
