/*
errors.go - Error kinds for the leave subsystem

PURPOSE:
  Every failure the subsystem can report, in one place. Callers need to
  tell "bad input" apart from "business-rule rejection", so the kinds are
  kept distinct rather than folded into one error type.

ERROR KINDS:
  ErrInvalidArgument    Malformed input (blank name, bad dates, nil account)
  ErrNotFound           Unknown account id
  ErrLeaveLimitExceeded Requested days exceed the remaining balance
  ErrInvalidLeaveDate   Requested range overlaps a stored range
  ErrRuleRejected       An injected eligibility rule refused the record

USAGE:
  err := dir.ApplyLeave(id, record)
  switch {
  case errors.Is(err, leave.ErrLeaveLimitExceeded):
      // ask for a shorter range
  case errors.Is(err, leave.ErrInvalidLeaveDate):
      var conflict *leave.DateConflictError
      errors.As(err, &conflict) // conflict.Existing is the clashing range
  }

SEE ALSO:
  - account.go: Produces limit, date and rule errors
  - directory.go: Produces not-found errors
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is returned when a constructor or operation receives
	// malformed input. State is never partially mutated.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when an account id is not registered.
	ErrNotFound = errors.New("account not found")

	// ErrLeaveLimitExceeded is returned when a record is longer than the
	// account's remaining balance.
	ErrLeaveLimitExceeded = errors.New("leave limit exceeded")

	// ErrInvalidLeaveDate is returned when a record overlaps a stored record.
	ErrInvalidLeaveDate = errors.New("invalid leave date")

	// ErrRuleRejected is returned when an eligibility rule refuses a record.
	ErrRuleRejected = errors.New("rejected by eligibility rule")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// LimitExceededError reports a balance shortage.
type LimitExceededError struct {
	AccountID AccountID
	Requested int
	Remaining int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("cannot apply for %d days: only %d remaining", e.Requested, e.Remaining)
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLeaveLimitExceeded
}

// DateConflictError reports the first stored range a request collided with.
type DateConflictError struct {
	AccountID AccountID
	Requested Period
	Existing  Period
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("leave dates %s to %s overlap with existing leave from %s to %s",
		formatDay(e.Requested.Start()), formatDay(e.Requested.End()),
		formatDay(e.Existing.Start()), formatDay(e.Existing.End()))
}

func (e *DateConflictError) Unwrap() error {
	return ErrInvalidLeaveDate
}

// NotFoundError names the id that was looked up.
type NotFoundError struct {
	ID AccountID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account with id %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// RuleRejectedError wraps the reason an eligibility rule gave.
type RuleRejectedError struct {
	AccountID AccountID
	Reason    error
}

func (e *RuleRejectedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrRuleRejected, e.Reason)
}

// Unwrap exposes both the sentinel and the rule's own error.
func (e *RuleRejectedError) Unwrap() []error {
	return []error{ErrRuleRejected, e.Reason}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error comes from caller input or a
// business-rule rejection, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrLeaveLimitExceeded) ||
		errors.Is(err, ErrInvalidLeaveDate) ||
		errors.Is(err, ErrRuleRejected)
}

// IsRejection returns true for business-rule rejections of a well-formed request.
func IsRejection(err error) bool {
	return errors.Is(err, ErrLeaveLimitExceeded) ||
		errors.Is(err, ErrInvalidLeaveDate) ||
		errors.Is(err, ErrRuleRejected)
}

// IsNotFound returns true if the error indicates a missing account.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
