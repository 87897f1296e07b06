package leave

import (
	"fmt"
	"time"
)

// Record is one approved leave range. It is a value: once built it never
// changes, and copies are safe to share.
type Record struct {
	category Category
	period   Period
}

// NewRecord validates the category and range and returns the record.
func NewRecord(category Category, start, end time.Time) (Record, error) {
	if !category.Valid() {
		return Record{}, invalidArgument("leave category %q is not defined", category)
	}
	p, err := NewPeriod(start, end)
	if err != nil {
		return Record{}, err
	}
	return Record{category: category, period: p}, nil
}

func (r Record) Category() Category { return r.category }
func (r Record) Start() time.Time   { return r.period.Start() }
func (r Record) End() time.Time     { return r.period.End() }
func (r Record) Period() Period     { return r.period }

// DurationDays is inclusive of both endpoints.
func (r Record) DurationDays() int { return r.period.Days() }

// Overlaps applies the closed-interval rule to the two ranges.
func (r Record) Overlaps(other Record) bool {
	return r.period.Overlaps(other.period)
}

// valid is false for a zero Record, which did not come from NewRecord.
func (r Record) valid() bool {
	return r.category.Valid() && !r.period.IsZero()
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s (%d days)", r.category, r.period, r.DurationDays())
}
