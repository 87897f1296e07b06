package leave

import "time"

// =============================================================================
// PERIOD - Closed interval of calendar days
// =============================================================================

// Period is a closed date range [start, end]. Both ends are calendar days
// at midnight UTC; time-of-day and location are discarded on construction.
// The only way to build a non-zero Period is NewPeriod, so start <= end.
//
// Examples:
//   - Jan 1 - Jan 5: 5 days
//   - Jun 4 - Jun 4: 1 day
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod normalizes both dates to their calendar day and checks the range.
func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, invalidArgument("start date and end date are required")
	}
	s, e := civilDay(start), civilDay(end)
	if s.After(e) {
		return Period{}, invalidArgument("start date %s is after end date %s", formatDay(s), formatDay(e))
	}
	return Period{start: s, end: e}, nil
}

// Start returns the first day of the period.
func (p Period) Start() time.Time { return p.start }

// End returns the last day of the period.
func (p Period) End() time.Time { return p.end }

// IsZero reports whether p was not built by NewPeriod.
func (p Period) IsZero() bool { return p.start.IsZero() }

// Days returns the inclusive number of days in the period.
func (p Period) Days() int {
	return daysBetween(p.start, p.end) + 1
}

// Contains returns true if the day falls within [Start, End].
func (p Period) Contains(day time.Time) bool {
	d := civilDay(day)
	return !d.Before(p.start) && !d.After(p.end)
}

// Overlaps reports whether two closed intervals share at least one day.
// A shared boundary day counts; a one-day gap does not.
func (p Period) Overlaps(other Period) bool {
	return !p.start.After(other.end) && !p.end.Before(other.start)
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + formatDay(p.start) + ", " + formatDay(p.end) + "]"
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into a calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalidArgument("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// Day builds a calendar day in UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts whole days on the Unix clock; time.Duration overflows
// past roughly 292 years.
func daysBetween(from, to time.Time) int {
	return int((civilDay(to).Unix() - civilDay(from).Unix()) / secondsPerDay)
}

func formatDay(t time.Time) string { return t.Format(DateLayout) }
