package store

import (
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"
)

// Category is the kind of merchant a store is.
type Category string

const (
	Restaurant Category = "restaurant"
	Grocery    Category = "grocery"
	Pharmacy   Category = "pharmacy"
)

// DefaultCategory is used when a store is created without a category.
const DefaultCategory = Restaurant

// ParseCategory resolves a category name case-insensitively.
// An empty string yields DefaultCategory.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultCategory, nil
	}

	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that c is one of the known categories.
func (c Category) Validate() error {
	switch c {
	case Restaurant, Grocery, Pharmacy:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a known category", string(c)))
	}
}

func (c Category) String() string {
	return string(c)
}
