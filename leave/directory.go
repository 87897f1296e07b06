/*
directory.go - Account registry and apply orchestration

PURPOSE:
  The Directory is the entry point callers use: register accounts, look
  them up by id, submit leave records and ask which employees are
  running low. It owns no balance logic itself; every apply is forwarded
  to the Account, which validates and mutates its own state.

FLOW:
  caller ──▶ Directory.ApplyLeave(id, record)
                 │
                 ├─ unknown id ──▶ NotFoundError (directory unchanged)
                 │
                 ▼
             Account.Apply(record, rules...)
                 │
                 ├─ LimitExceededError / DateConflictError / RuleRejectedError
                 └─ nil: record stored, balance reduced

CONCURRENCY:
  The Store serializes registry access; each Account serializes its own
  applies. Applies on different accounts run in parallel.

EXAMPLE:
  dir := leave.NewDirectory(store.NewMemory(), leave.WithLogger(log))
  alice, _ := leave.NewAccount("Alice Johnson", 20)
  dir.Register(alice)

  rec, _ := leave.NewRecord(leave.Casual, leave.Day(2025, 6, 1), leave.Day(2025, 6, 5))
  err := dir.ApplyLeave(alice.ID(), rec) // remaining: 15

SEE ALSO:
  - account.go: Apply semantics
  - store.go: Registry interface and Observer
*/
package leave

import (
	"go.uber.org/zap"
)

// Directory registers accounts and routes applies to them.
type Directory struct {
	store    Store
	rules    []Rule
	observer Observer
	logger   *zap.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRules adds eligibility rules evaluated on every apply, in order.
func WithRules(rules ...Rule) Option {
	return func(d *Directory) {
		d.rules = append(d.rules, rules...)
	}
}

// WithObserver sets the outcome observer (e.g. metrics).
func WithObserver(o Observer) Option {
	return func(d *Directory) {
		if o != nil {
			d.observer = o
		}
	}
}

// NewDirectory creates a directory over store.
func NewDirectory(store Store, opts ...Option) *Directory {
	d := &Directory{
		store:    store,
		observer: nopObserver{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// =============================================================================
// REGISTRY
// =============================================================================

// Register inserts a, overwriting any account with the same id. Only the
// first registration of an id is reported to the observer.
func (d *Directory) Register(a *Account) error {
	if a == nil {
		return invalidArgument("account cannot be nil")
	}
	if replaced := d.store.Put(a); replaced {
		d.logger.Debug("account re-registered", zap.String("account_id", a.ID().String()))
		return nil
	}
	d.observer.AccountRegistered()
	d.logger.Debug("account registered",
		zap.String("account_id", a.ID().String()),
		zap.String("name", a.Name()),
		zap.Int("total_allotment", a.TotalAllotment()),
	)
	return nil
}

// FindByID returns the account registered under id.
func (d *Directory) FindByID(id AccountID) (*Account, bool) {
	return d.store.Get(id)
}

// AllAccounts returns a copy of the registered accounts.
func (d *Directory) AllAccounts() []*Account {
	return d.store.List()
}

// =============================================================================
// APPLY
// =============================================================================

// ApplyLeave submits r against the account registered under id. Errors
// from the account are returned unchanged.
func (d *Directory) ApplyLeave(id AccountID, r Record) error {
	a, ok := d.store.Get(id)
	if !ok {
		err := &NotFoundError{ID: id}
		d.reject(id, r, err)
		return err
	}

	if err := a.Apply(r, d.rules...); err != nil {
		d.reject(id, r, err)
		return err
	}

	d.observer.LeaveApplied(r.Category(), r.DurationDays())
	d.logger.Debug("leave applied",
		zap.String("account_id", id.String()),
		zap.String("category", r.Category().String()),
		zap.Stringer("period", r.Period()),
		zap.Int("days", r.DurationDays()),
	)
	return nil
}

func (d *Directory) reject(id AccountID, r Record, err error) {
	reason := ReasonFor(err)
	d.observer.LeaveRejected(r.Category(), reason)
	d.logger.Info("leave rejected",
		zap.String("account_id", id.String()),
		zap.String("reason", string(reason)),
		zap.Stringer("period", r.Period()),
		zap.Error(err),
	)
}

// =============================================================================
// REPORTING
// =============================================================================

// AccountsBelowThreshold returns every account whose remaining balance is
// strictly below threshold, in store iteration order.
func (d *Directory) AccountsBelowThreshold(threshold int) ([]*Account, error) {
	if threshold < 0 {
		return nil, invalidArgument("threshold cannot be negative, got %d", threshold)
	}
	var out []*Account
	for _, a := range d.store.List() {
		if a.RemainingDays() < threshold {
			out = append(out, a)
		}
	}
	return out, nil
}

// LowBalanceReport is AccountsBelowThreshold as balance summaries.
func (d *Directory) LowBalanceReport(threshold int) ([]Summary, error) {
	if threshold < 0 {
		return nil, invalidArgument("threshold cannot be negative, got %d", threshold)
	}
	out := []Summary{}
	for _, a := range d.store.List() {
		// one snapshot per account so Remaining and Taken agree
		if s := a.Summary(); s.Remaining < threshold {
			out = append(out, s)
		}
	}
	return out, nil
}
