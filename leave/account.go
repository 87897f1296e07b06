/*
account.go - Per-employee leave balance and overlap enforcement

PURPOSE:
  An Account holds an employee's total allotment and the records applied
  against it. Balance is never stored: taken and remaining days are
  always recomputed from the records, so they cannot drift.

INVARIANTS:
  1. RemainingDays() >= 0 after every successful Apply.
  2. No two stored records overlap (closed intervals).
  3. Records are append-only and only grow through Apply.

APPLY ORDER:
  0. Zero Record      -> ErrInvalidArgument
  1. Balance check    -> LimitExceededError
  2. Overlap check    -> DateConflictError (first conflict, insertion order)
  3. Eligibility rules -> RuleRejectedError
  4. Append

  All checks read the pre-mutation state. The append is the only write,
  and the whole sequence holds the account mutex, so concurrent applies
  on one account are serialized. Different accounts never share a lock.

SEE ALSO:
  - record.go: The immutable value being applied
  - rules.go: Eligibility rules run in step 3
  - directory.go: Looks accounts up and forwards applies
*/
package leave

import (
	"strings"
	"sync"
)

// Account is an employee's leave account.
type Account struct {
	id    AccountID
	name  string
	total int

	mu      sync.Mutex
	records []Record
}

// NewAccount creates an account with a fresh id and no records.
func NewAccount(name string, totalAllotment int) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("employee name cannot be blank")
	}
	if totalAllotment < 0 {
		return nil, invalidArgument("total allotment cannot be negative, got %d", totalAllotment)
	}
	return &Account{
		id:    newAccountID(),
		name:  name,
		total: totalAllotment,
	}, nil
}

func (a *Account) ID() AccountID       { return a.id }
func (a *Account) Name() string        { return a.name }
func (a *Account) TotalAllotment() int { return a.total }

// TakenDays sums the duration of every stored record.
func (a *Account) TakenDays() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.takenLocked()
}

// RemainingDays is the allotment minus the days taken.
func (a *Account) RemainingDays() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total - a.takenLocked()
}

// Records returns a copy of the stored records in insertion order.
func (a *Account) Records() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recordsLocked()
}

// CanAccept reports whether r fits the balance and overlaps nothing stored.
// Eligibility rules are not consulted.
func (a *Account) CanAccept(r Record) bool {
	if !r.valid() {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if r.DurationDays() > a.total-a.takenLocked() {
		return false
	}
	_, conflict := a.conflictLocked(r)
	return !conflict
}

// Apply validates r against the balance, the stored records and any rules,
// then appends it. On error nothing is stored.
func (a *Account) Apply(r Record, rules ...Rule) error {
	if !r.valid() {
		return invalidArgument("leave record is not initialized")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	remaining := a.total - a.takenLocked()
	if r.DurationDays() > remaining {
		return &LimitExceededError{
			AccountID: a.id,
			Requested: r.DurationDays(),
			Remaining: remaining,
		}
	}

	if existing, conflict := a.conflictLocked(r); conflict {
		return &DateConflictError{
			AccountID: a.id,
			Requested: r.Period(),
			Existing:  existing.Period(),
		}
	}

	if len(rules) > 0 {
		view := a.viewLocked(remaining)
		for _, rule := range rules {
			if rule == nil {
				continue
			}
			if err := rule(view, r); err != nil {
				return &RuleRejectedError{AccountID: a.id, Reason: err}
			}
		}
	}

	a.records = append(a.records, r)
	return nil
}

// Summary returns a point-in-time balance snapshot.
func (a *Account) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	taken := a.takenLocked()
	return newSummary(a.id, a.name, a.total, taken, len(a.records))
}

func (a *Account) String() string {
	s := a.Summary()
	return "Account{id=" + string(s.ID) + ", name=" + s.Name + "}"
}

// =============================================================================
// LOCKED HELPERS - Caller holds a.mu
// =============================================================================

func (a *Account) takenLocked() int {
	taken := 0
	for _, r := range a.records {
		taken += r.DurationDays()
	}
	return taken
}

func (a *Account) conflictLocked(r Record) (Record, bool) {
	for _, existing := range a.records {
		if existing.Overlaps(r) {
			return existing, true
		}
	}
	return Record{}, false
}

func (a *Account) recordsLocked() []Record {
	out := make([]Record, len(a.records))
	copy(out, a.records)
	return out
}

func (a *Account) viewLocked(remaining int) View {
	return View{
		ID:             a.id,
		Name:           a.name,
		TotalAllotment: a.total,
		RemainingDays:  remaining,
		Records:        a.recordsLocked(),
	}
}
