package leave

import "errors"

// =============================================================================
// STORE - Registry of accounts keyed by id
// =============================================================================

// Store holds the directory's accounts. Implementations must be safe for
// concurrent use and must key every account by its own ID().
//
// IMPLEMENTATIONS:
//   - leave/store/memory.go: process-lifetime map
type Store interface {
	// Put inserts a, replacing any account already stored under a.ID().
	// It reports whether an account was replaced.
	Put(a *Account) (replaced bool)

	// Get returns the account stored under id.
	Get(id AccountID) (*Account, bool)

	// List returns every stored account. The slice is owned by the caller.
	List() []*Account

	// Len returns the number of stored accounts.
	Len() int
}

// Observer receives apply outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	AccountRegistered()
	LeaveApplied(category Category, days int)
	LeaveRejected(category Category, reason RejectReason)
}

// RejectReason labels why an apply failed.
type RejectReason string

const (
	ReasonLimitExceeded RejectReason = "limit_exceeded"
	ReasonDateConflict  RejectReason = "date_conflict"
	ReasonRuleRejected  RejectReason = "rule_rejected"
	ReasonNotFound      RejectReason = "not_found"
	ReasonOther         RejectReason = "other"
)

// ReasonFor classifies an apply error.
func ReasonFor(err error) RejectReason {
	switch {
	case IsNotFound(err):
		return ReasonNotFound
	case errors.Is(err, ErrLeaveLimitExceeded):
		return ReasonLimitExceeded
	case errors.Is(err, ErrInvalidLeaveDate):
		return ReasonDateConflict
	case errors.Is(err, ErrRuleRejected):
		return ReasonRuleRejected
	default:
		return ReasonOther
	}
}

type nopObserver struct{}

func (nopObserver) AccountRegistered()                   {}
func (nopObserver) LeaveApplied(Category, int)           {}
func (nopObserver) LeaveRejected(Category, RejectReason) {}
