package commands

import (
	"math"
	"sync"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

const (
	// DefaultOriginLat and DefaultOriginLng locate the Casablanca reference point.
	DefaultOriginLat = 33.5731
	DefaultOriginLng = -7.5898
	// DefaultSpawnSpread is the half side, in degrees, of the square new
	// entities without an explicit location are placed in.
	DefaultSpawnSpread = 0.02
)

// SpawnArea places entities that were added without a location.
// It is safe for concurrent use.
//
// Example:
//
//	origin, _ := kernel.NewLocation(commands.DefaultOriginLat, commands.DefaultOriginLng)
//	area, _ := commands.NewSpawnArea(origin, commands.DefaultSpawnSpread, rand.New(rand.NewPCG(1, 2)))
//	loc, _ := area.RandomLocation()
type SpawnArea struct {
	origin kernel.Location
	spread float64

	mu  sync.Mutex
	rnd kernel.RandomSource
}

// NewSpawnArea creates the square origin ± spread degrees. A zero spread
// always yields the origin.
func NewSpawnArea(origin kernel.Location, spread float64, rnd kernel.RandomSource) (*SpawnArea, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if spread < 0 || math.IsNaN(spread) {
		return nil, errs.NewValueIsOutOfRangeError("spread", spread, 0, "+Inf")
	}
	if rnd == nil {
		return nil, errs.NewValueIsRequiredError("rnd")
	}

	return &SpawnArea{origin: origin, spread: spread, rnd: rnd}, nil
}

// Origin returns the centre of the area.
func (a *SpawnArea) Origin() kernel.Location {
	return a.origin
}

// RandomLocation draws a location uniformly inside the area.
func (a *SpawnArea) RandomLocation() (kernel.Location, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return kernel.NewRandomLocationAround(a.origin, a.spread, a.rnd)
}

// locationOrRandom keeps an explicit location and draws one otherwise.
func (a *SpawnArea) locationOrRandom(loc kernel.Location) (kernel.Location, error) {
	if loc.Validate() == nil {
		return loc, nil
	}
	return a.RandomLocation()
}
