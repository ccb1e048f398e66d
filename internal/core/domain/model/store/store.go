package store

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// DefaultAddress is used when a store is created without an address.
const DefaultAddress = "Casablanca, Morocco"

var (
	// ErrNameIsRequired is returned when attempting to create a store without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrStoreIsNotConstructed is returned when using an improperly initialized Store.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
)

// Store is a merchant pickup point. Stores are immutable once created.
//
// Example:
//
//	loc, _ := kernel.NewLocation(33.5822, -7.6325)
//	s, err := store.NewStore(kernel.NewID(kernel.KindStore), "McDonald's Maarif", loc, store.Restaurant, "")
//	// s.Address() == store.DefaultAddress
type Store struct {
	id       kernel.ID
	name     string
	location kernel.Location
	category Category
	address  string
	guard    guard.ConstructorGuard
}

// NewStore creates a store. A blank address is replaced with DefaultAddress
// and an empty category with DefaultCategory.
//
// Parameters:
//   - id: Unique identifier of kind kernel.KindStore
//   - name: display name, must not be blank
//   - location: pickup position
//   - category: one of Restaurant, Grocery, Pharmacy or empty
//   - address: free text
//
// Returns:
//   - *Store: the created store
//   - error: Validation errors aggregated with errors.Join
func NewStore(id kernel.ID, name string, location kernel.Location, category Category, address string) (*Store, error) {
	s := &Store{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setLocation(location),
		s.setCategory(category),
	); err != nil {
		return nil, err
	}
	s.setAddress(address)

	return s, nil
}

// Validate checks if the Store was properly constructed using NewStore.
func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

func (s *Store) ID() kernel.ID {
	return s.id
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Location() kernel.Location {
	return s.location
}

func (s *Store) Category() Category {
	return s.category
}

func (s *Store) Address() string {
	return s.address
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	c := *s
	return &c
}

func (s *Store) setID(id kernel.ID) error {
	if err := id.ValidateKind(kernel.KindStore); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

func (s *Store) setCategory(category Category) error {
	if category == "" {
		category = DefaultCategory
	}
	if err := category.Validate(); err != nil {
		return err
	}
	s.category = category
	return nil
}

func (s *Store) setAddress(address string) {
	address = strings.TrimSpace(address)
	if address == "" {
		address = DefaultAddress
	}
	s.address = address
}
