package leave

import (
	"fmt"
	"slices"
)

// View is the read-only snapshot of an account handed to a Rule. It is
// taken after the balance and overlap checks passed.
type View struct {
	ID             AccountID
	Name           string
	TotalAllotment int
	RemainingDays  int
	Records        []Record
}

// Rule decides whether a candidate record may be stored. Returning nil
// accepts it; any error rejects the apply and is wrapped in a
// RuleRejectedError. Rules run while the account is locked and must not
// call back into the account.
type Rule func(v View, candidate Record) error

// MaxConsecutiveDays rejects records longer than n days. n <= 0 disables it.
func MaxConsecutiveDays(n int) Rule {
	return func(_ View, candidate Record) error {
		if n <= 0 || candidate.DurationDays() <= n {
			return nil
		}
		return fmt.Errorf("%d consecutive days requested, at most %d allowed", candidate.DurationDays(), n)
	}
}

// AllowedCategories rejects records whose category is not listed.
func AllowedCategories(categories ...Category) Rule {
	allowed := slices.Clone(categories)
	return func(_ View, candidate Record) error {
		if slices.Contains(allowed, candidate.Category()) {
			return nil
		}
		return fmt.Errorf("category %s is not allowed", candidate.Category())
	}
}
