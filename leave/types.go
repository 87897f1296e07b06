// Package leave implements employee leave bookkeeping: immutable leave
// records, per-employee accounts that enforce the balance and overlap
// rules, and a directory that registers accounts and orchestrates applies.
package leave

import (
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// CATEGORY - Informational tag on a record
// =============================================================================

// Category labels a leave record. It never affects balance or overlap.
type Category string

const (
	Casual Category = "casual"
	Sick   Category = "sick"
	Annual Category = "annual"
)

// Categories lists every defined category.
var Categories = []Category{Casual, Sick, Annual}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case Casual, Sick, Annual:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory maps a case-insensitive name onto a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", invalidArgument("unknown leave category %q", s)
	}
	return c, nil
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

// AccountID identifies an account for its whole lifetime.
type AccountID string

func newAccountID() AccountID {
	return AccountID(uuid.NewString())
}

func (id AccountID) String() string { return string(id) }
