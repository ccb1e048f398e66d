package kernel

import (
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
)

// Kind names the collection an ID belongs to and prefixes its string form.
type Kind string

const (
	KindStore    Kind = "store"
	KindCourier  Kind = "courier"
	KindCustomer Kind = "customer"
	KindOrder    Kind = "order"
)

// ErrIDIsNotConstructed indicates that an ID was not created through NewID or ParseID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or ParseID")

// ID identifies an entity across the process lifetime. Its string form is
// "{kind}_{uuid}" where the uuid is version 7, so IDs of one kind sort by
// creation time.
//
// ID is comparable and can be used as a map key. The zero value is invalid.
//
// Example:
//
//	id := kernel.NewID(kernel.KindCourier)
//	fmt.Println(id) // courier_0190c6a4-5d1e-7b3a-9f2c-...
//
//	parsed, err := kernel.ParseID(kernel.KindCourier, id.String())
//	// parsed == id
type ID struct {
	kind  Kind
	value uuid.UUID
}

// NewID generates a fresh time-ordered ID of the given kind.
// It panics only if the system random source fails, like uuid.Must.
func NewID(kind Kind) ID {
	return ID{
		kind:  kind,
		value: uuid.Must(uuid.NewV7()),
	}
}

// ParseID parses the string form of an ID and checks its kind prefix.
//
// Returns:
//   - ID: the parsed identifier
//   - error: errs.ValueIsRequiredError for an empty string,
//     errs.ValueIsInvalidError for a wrong prefix or malformed uuid
func ParseID(kind Kind, s string) (ID, error) {
	paramName := string(kind) + "Id"
	if strings.TrimSpace(s) == "" {
		return ID{}, errs.NewValueIsRequiredError(paramName)
	}

	prefix, raw, ok := strings.Cut(s, "_")
	if !ok || Kind(prefix) != kind {
		return ID{}, errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("expected %q prefix", string(kind)+"_"))
	}

	value, err := uuid.Parse(raw)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if value == uuid.Nil {
		return ID{}, ErrIDIsNotConstructed
	}

	return ID{kind: kind, value: value}, nil
}

// Kind returns the collection the ID belongs to.
func (id ID) Kind() Kind {
	return id.kind
}

// String returns the "{kind}_{uuid}" form, or an empty string for the zero value.
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return string(id.kind) + "_" + id.value.String()
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.value == uuid.Nil
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (id ID) Validate() error {
	if id.IsZero() || id.kind == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}

// ValidateKind validates id and checks that it belongs to kind.
func (id ID) ValidateKind(kind Kind) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if id.kind != kind {
		return errs.NewValueIsInvalidErrorWithCause(string(kind)+"Id", fmt.Errorf("got %s id", id.kind))
	}
	return nil
}
