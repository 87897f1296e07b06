package leave_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/warp/leave-tracker/leave"
	"github.com/warp/leave-tracker/leave/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type recordingObserver struct {
	mu         sync.Mutex
	registered int
	applied    map[leave.Category]int
	rejected   map[leave.RejectReason]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		applied:  make(map[leave.Category]int),
		rejected: make(map[leave.RejectReason]int),
	}
}

func (o *recordingObserver) AccountRegistered() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.registered++
}

func (o *recordingObserver) LeaveApplied(c leave.Category, days int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.applied[c] += days
}

func (o *recordingObserver) LeaveRejected(_ leave.Category, reason leave.RejectReason) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected[reason]++
}

func newTestDirectory(t *testing.T, opts ...leave.Option) (*leave.Directory, *leave.Account, *leave.Account) {
	t.Helper()
	dir := leave.NewDirectory(store.NewMemory(), opts...)
	alice := newAccount(t, "Alice Johnson", 20)
	bob := newAccount(t, "Bob Williams", 10)
	require.NoError(t, dir.Register(alice))
	require.NoError(t, dir.Register(bob))
	return dir, alice, bob
}

func ids(accounts []*leave.Account) []leave.AccountID {
	out := make([]leave.AccountID, len(accounts))
	for i, a := range accounts {
		out[i] = a.ID()
	}
	return out
}

// =============================================================================
// REGISTRY
// =============================================================================

func TestDirectory_RegisterAndFind(t *testing.T) {
	dir, alice, _ := newTestDirectory(t)

	found, ok := dir.FindByID(alice.ID())
	require.True(t, ok)
	assert.Same(t, alice, found)

	_, ok = dir.FindByID("no-such-id")
	assert.False(t, ok)
}

func TestDirectory_RegisterNil(t *testing.T) {
	dir := leave.NewDirectory(store.NewMemory())
	err := dir.Register(nil)
	assert.ErrorIs(t, err, leave.ErrInvalidArgument)
	assert.Empty(t, dir.AllAccounts())
}

func TestDirectory_RegisterSameAccountTwice(t *testing.T) {
	obs := newRecordingObserver()
	dir, alice, _ := newTestDirectory(t, leave.WithObserver(obs))

	require.NoError(t, dir.Register(alice))

	assert.Len(t, dir.AllAccounts(), 2, "overwrite by id, no duplicate")
	assert.Equal(t, 2, obs.registered, "re-registration is not counted")
}

func TestDirectory_AllAccountsIsACopy(t *testing.T) {
	dir, alice, bob := newTestDirectory(t)

	all := dir.AllAccounts()
	all[0] = nil
	_ = append(all, newAccount(t, "Intruder", 1))

	assert.ElementsMatch(t, []leave.AccountID{alice.ID(), bob.ID()}, ids(dir.AllAccounts()))
}

// =============================================================================
// APPLY
// =============================================================================

func TestDirectory_ApplyLeave(t *testing.T) {
	dir, alice, _ := newTestDirectory(t)

	err := dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Casual, leave.Day(2025, time.January, 1), leave.Day(2025, time.January, 5)))

	require.NoError(t, err)
	assert.Equal(t, 15, alice.RemainingDays())
	require.Len(t, alice.Records(), 1)
	assert.Equal(t, 5, alice.Records()[0].DurationDays())
}

func TestDirectory_ApplyLeave_MultipleRecords(t *testing.T) {
	dir, alice, _ := newTestDirectory(t)

	require.NoError(t, dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Casual, leave.Day(2025, time.March, 1), leave.Day(2025, time.March, 3))))
	require.NoError(t, dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Sick, leave.Day(2025, time.April, 10), leave.Day(2025, time.April, 11))))

	assert.Equal(t, 15, alice.RemainingDays())
	assert.Len(t, alice.Records(), 2)
}

func TestDirectory_ApplyLeave_PropagatesAccountErrors(t *testing.T) {
	dir, alice, bob := newTestDirectory(t)

	err := dir.ApplyLeave(bob.ID(), mustRecord(t, leave.Sick, leave.Day(2025, time.February, 1), leave.Day(2025, time.February, 15)))
	var limitErr *leave.LimitExceededError
	assert.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 10, bob.RemainingDays())
	assert.Empty(t, bob.Records())

	require.NoError(t, dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Casual, leave.Day(2025, time.January, 5), leave.Day(2025, time.January, 10))))
	err = dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Sick, leave.Day(2025, time.January, 8), leave.Day(2025, time.January, 12)))
	var conflict *leave.DateConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 14, alice.RemainingDays())
}

func TestDirectory_ApplyLeave_ScenarioE_NotFound(t *testing.T) {
	dir, alice, bob := newTestDirectory(t)

	err := dir.ApplyLeave("non-existent-employee-id", mustRecord(t, leave.Casual, leave.Day(2025, time.March, 1), leave.Day(2025, time.March, 5)))

	assert.ErrorIs(t, err, leave.ErrNotFound)
	assert.True(t, leave.IsNotFound(err))
	assert.False(t, leave.IsClientError(err))
	var nf *leave.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, leave.AccountID("non-existent-employee-id"), nf.ID)

	// directory state unchanged
	assert.ElementsMatch(t, []leave.AccountID{alice.ID(), bob.ID()}, ids(dir.AllAccounts()))
	assert.Equal(t, 20, alice.RemainingDays())
	assert.Equal(t, 10, bob.RemainingDays())
}

func TestDirectory_ApplyLeave_WithRules(t *testing.T) {
	dir, alice, _ := newTestDirectory(t, leave.WithRules(leave.MaxConsecutiveDays(3)))

	err := dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Annual, leave.Day(2025, time.June, 1), leave.Day(2025, time.June, 4)))
	assert.ErrorIs(t, err, leave.ErrRuleRejected)
	assert.Equal(t, 20, alice.RemainingDays())

	err = dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Annual, leave.Day(2025, time.June, 1), leave.Day(2025, time.June, 3)))
	assert.NoError(t, err)
}

func TestDirectory_ObserverAndLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	obs := newRecordingObserver()
	dir, alice, bob := newTestDirectory(t, leave.WithObserver(obs), leave.WithLogger(zap.New(core)))

	require.NoError(t, dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Casual, leave.Day(2025, time.June, 1), leave.Day(2025, time.June, 5))))
	_ = dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Casual, leave.Day(2025, time.June, 5), leave.Day(2025, time.June, 6)))
	_ = dir.ApplyLeave(bob.ID(), mustRecord(t, leave.Sick, leave.Day(2025, time.July, 1), leave.Day(2025, time.July, 30)))
	_ = dir.ApplyLeave("ghost", mustRecord(t, leave.Sick, leave.Day(2025, time.July, 1), leave.Day(2025, time.July, 1)))

	assert.Equal(t, 2, obs.registered)
	assert.Equal(t, 5, obs.applied[leave.Casual])
	assert.Equal(t, 1, obs.rejected[leave.ReasonDateConflict])
	assert.Equal(t, 1, obs.rejected[leave.ReasonLimitExceeded])
	assert.Equal(t, 1, obs.rejected[leave.ReasonNotFound])

	rejections := logs.FilterMessage("leave rejected").All()
	require.Len(t, rejections, 3)
	assert.Equal(t, string(leave.ReasonDateConflict), rejections[0].ContextMap()["reason"])
}

func TestDirectory_ApplyLeave_ZeroRecord(t *testing.T) {
	obs := newRecordingObserver()
	dir, alice, _ := newTestDirectory(t, leave.WithObserver(obs))

	err := dir.ApplyLeave(alice.ID(), leave.Record{})

	assert.ErrorIs(t, err, leave.ErrInvalidArgument)
	assert.Equal(t, 20, alice.RemainingDays())
	assert.Empty(t, alice.Records())
	assert.Equal(t, 1, obs.rejected[leave.ReasonOther])
}

// =============================================================================
// REPORTING
// =============================================================================

func TestDirectory_ScenarioD_AccountsBelowThreshold(t *testing.T) {
	// GIVEN: Alice left with 4 days, Bob with 3
	dir, alice, bob := newTestDirectory(t)
	require.NoError(t, dir.ApplyLeave(alice.ID(), mustRecord(t, leave.Annual, leave.Day(2025, time.June, 1), leave.Day(2025, time.June, 16))))
	require.NoError(t, dir.ApplyLeave(bob.ID(), mustRecord(t, leave.Casual, leave.Day(2025, time.July, 1), leave.Day(2025, time.July, 7))))

	// WHEN: threshold 5
	low, err := dir.AccountsBelowThreshold(5)
	require.NoError(t, err)

	// THEN: both, with their balances
	assert.ElementsMatch(t, []leave.AccountID{alice.ID(), bob.ID()}, ids(low))
	for _, a := range low {
		switch a.ID() {
		case alice.ID():
			assert.Equal(t, 4, a.RemainingDays())
		case bob.ID():
			assert.Equal(t, 3, a.RemainingDays())
		}
	}

	// strict comparison: 3 is not below 3
	low, err = dir.AccountsBelowThreshold(3)
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestDirectory_AccountsBelowThreshold_NoneLow(t *testing.T) {
	dir, _, _ := newTestDirectory(t)

	low, err := dir.AccountsBelowThreshold(5)
	require.NoError(t, err)
	assert.Empty(t, low)

	low, err = dir.AccountsBelowThreshold(0)
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestDirectory_AccountsBelowThreshold_Negative(t *testing.T) {
	dir, _, _ := newTestDirectory(t)

	_, err := dir.AccountsBelowThreshold(-1)
	assert.ErrorIs(t, err, leave.ErrInvalidArgument)

	_, err = dir.LowBalanceReport(-1)
	assert.ErrorIs(t, err, leave.ErrInvalidArgument)
}

func TestDirectory_LowBalanceReport(t *testing.T) {
	dir, alice, bob := newTestDirectory(t)
	require.NoError(t, dir.ApplyLeave(bob.ID(), mustRecord(t, leave.Casual, leave.Day(2025, time.July, 1), leave.Day(2025, time.July, 7))))

	report, err := dir.LowBalanceReport(5)
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Equal(t, bob.ID(), report[0].ID)
	assert.Equal(t, 3, report[0].Remaining)
	assert.Equal(t, "0.7", report[0].Utilization.String())
	assert.NotEqual(t, alice.ID(), report[0].ID)
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestDirectory_ConcurrentAppliesAcrossAccounts(t *testing.T) {
	dir := leave.NewDirectory(store.NewMemory())
	accounts := make([]*leave.Account, 8)
	for i := range accounts {
		accounts[i] = newAccount(t, "Worker", 5)
		require.NoError(t, dir.Register(accounts[i]))
	}
	records := make([]leave.Record, 10)
	for i := range records {
		day := leave.Day(2025, time.September, 1+i)
		records[i] = mustRecord(t, leave.Casual, day, day)
	}

	var wg sync.WaitGroup
	for _, a := range accounts {
		for _, r := range records {
			wg.Add(1)
			go func(id leave.AccountID, r leave.Record) {
				defer wg.Done()
				_ = dir.ApplyLeave(id, r)
			}(a.ID(), r)
		}
	}
	wg.Wait()

	for _, a := range accounts {
		assert.Equal(t, 0, a.RemainingDays())
		assert.Equal(t, a.TotalAllotment()-a.TakenDays(), a.RemainingDays())
		assertNoOverlaps(t, a.Records())
	}
}
