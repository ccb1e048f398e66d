package kernel

import (
	"errors"
	"fmt"
	"math"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0

	// EarthRadiusKm is the mean earth radius used by Distance.
	EarthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation or NewRandomLocationAround.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or NewRandomLocationAround constructors")

// RandomSource is the subset of *rand.Rand used to place and move entities.
// Float64 must return a value in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Location is a geographic point in decimal degrees.
// Location is an immutable value object; the zero value is invalid and will fail validation.
//
// Example:
//
//	loc, err := kernel.NewLocation(33.5731, -7.5898)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(33.573100,-7.589800)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a new Location from a latitude and longitude.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]. NaN is rejected for both.
//
// Parameters:
//   - lat: latitude in degrees
//   - lng: longitude in degrees
//
// Returns:
//   - Location: A valid location instance
//   - error: errs.ValueIsOutOfRangeError for each coordinate that is out of bounds
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewRandomLocationAround places a location uniformly inside the square
// origin ± spread degrees on both axes. It is used when an entity is
// created without an explicit position.
//
// Parameters:
//   - origin: centre of the square, must be a constructed Location
//   - spread: half side of the square in degrees, must not be negative
//   - rnd: random source, usually *rand.Rand from math/rand/v2
//
// Example:
//
//	origin, _ := kernel.NewLocation(33.5731, -7.5898)
//	loc, err := kernel.NewRandomLocationAround(origin, 0.02, rand.New(rand.NewPCG(1, 2)))
func NewRandomLocationAround(origin Location, spread float64, rnd RandomSource) (Location, error) {
	if err := origin.Validate(); err != nil {
		return Location{}, err
	}
	if rnd == nil {
		return Location{}, errs.NewValueIsRequiredError("rnd")
	}
	if spread < 0 || math.IsNaN(spread) {
		return Location{}, errs.NewValueIsOutOfRangeError("spread", spread, 0, "+Inf")
	}

	return origin.Offset(Jitter(rnd, spread), Jitter(rnd, spread))
}

// Jitter returns a value drawn uniformly from [-bound, +bound).
func Jitter(rnd RandomSource, bound float64) float64 {
	return (rnd.Float64()*2 - 1) * bound
}

// Validate checks if the Location was properly constructed using a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// Offset returns a new Location shifted by dLat and dLng degrees.
// The receiver is not modified. The result is validated like NewLocation,
// so a shift past a pole or the antimeridian yields an out of range error.
//
// Example:
//
//	loc, _ := NewLocation(33.5, -7.6)
//	moved, err := loc.Offset(0.0001, -0.0001)
//	// moved = Location(33.500100,-7.600100)
func (l Location) Offset(dLat, dLng float64) (Location, error) {
	if err := l.Validate(); err != nil {
		return Location{}, err
	}
	return NewLocation(l.lat+dLat, l.lng+dLng)
}

// String returns the location in the form "Location(lat,lng)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual compares two locations for equality.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// Distance returns the great-circle distance between a and b in kilometres,
// computed with the haversine formula on a sphere of EarthRadiusKm.
// It is symmetric and returns exactly zero for equal points.
//
// Example:
//
//	a, _ := NewLocation(33.60, -7.61)
//	b, _ := NewLocation(33.58, -7.62)
//	km := Distance(a, b) // ~2.4
func Distance(a, b Location) float64 {
	if a.lat == b.lat && a.lng == b.lng {
		return 0
	}

	lat1 := degToRad(a.lat)
	lat2 := degToRad(b.lat)
	dLat := lat2 - lat1
	dLng := degToRad(b.lng - a.lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// FormatDistance renders a distance in kilometres for people:
// whole metres below one kilometre ("850 m"), one decimal otherwise ("1.2 km").
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.1f km", km)
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
