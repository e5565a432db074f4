package attendance_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/attendance/store"
	"github.com/warp/attendance-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const (
	testTenant   = "tenant-1"
	testEmployee = "emp-1"
)

func newTestEngine(cfg schedule.Config) (*attendance.Engine, *store.TxMemory) {
	mem := store.NewTxMemory()
	engine := attendance.NewEngine(mem, schedule.StaticSource{Config: cfg})
	engine.Logf = func(string, ...any) {} // keep test output quiet
	return engine, mem
}

func testDay() attendance.Day {
	return attendance.NewDay(2025, time.March, 10)
}

// at builds a timestamp on the test day.
func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func punch(t *testing.T, mem *store.TxMemory, ts time.Time, dir attendance.Direction) attendance.PunchEvent {
	t.Helper()
	ev, err := mem.InsertEvent(context.Background(), attendance.PunchEvent{
		EmployeeID: testEmployee,
		Timestamp:  ts,
		Direction:  dir,
	})
	require.NoError(t, err)
	return ev
}

func reconcile(t *testing.T, engine *attendance.Engine) attendance.Result {
	t.Helper()
	result, err := engine.Reconcile(context.Background(), testTenant, testEmployee, testDay())
	require.NoError(t, err)
	return result
}

func syntheticEvents(t *testing.T, mem *store.TxMemory) []attendance.PunchEvent {
	t.Helper()
	events, err := mem.ListEvents(context.Background(), testEmployee, testDay(), true)
	require.NoError(t, err)
	var synth []attendance.PunchEvent
	for _, ev := range events {
		if ev.Synthetic {
			synth = append(synth, ev)
		}
	}
	return synth
}

// =============================================================================
// CLEAN DAYS
// =============================================================================

func TestReconcile_CleanDay_FullHours(t *testing.T) {
	// GIVEN: A complete day: IN 08:00, OUT 12:00, IN 13:00, OUT 17:00
	// WHEN: Reconciling
	// THEN: 8.00 hours, present, no flags, no synthetic events

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(12, 0), attendance.DirectionOut)
	punch(t, mem, at(13, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "8.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusPresent, result.Summary.Status)
	assert.False(t, result.Summary.NeedsReview)
	assert.False(t, result.Summary.Incomplete)
	assert.False(t, result.Summary.AutoCorrected)
	assert.Empty(t, syntheticEvents(t, mem))
}

func TestReconcile_UnorderedArrival_SameResult(t *testing.T) {
	// GIVEN: The same punches recorded out of chronological order
	// WHEN: Reconciling
	// THEN: Same result as ordered arrival; the log order is what counts

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(17, 0), attendance.DirectionOut)
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(13, 0), attendance.DirectionIn)
	punch(t, mem, at(12, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "8.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusPresent, result.Summary.Status)
}

func TestReconcile_WholeShiftSingleInterval_BreakDeducted(t *testing.T) {
	// GIVEN: One interval spanning the whole shift: IN 08:00, OUT 17:00
	// WHEN: Reconciling with break deduction enabled
	// THEN: 9h minus the 1h break = 8.00, marked auto-corrected

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "8.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusPresent, result.Summary.Status)
	assert.True(t, result.Summary.AutoCorrected, "break deduction counts as a correction")
}

func TestReconcile_WholeShiftInterval_DeductionDisabled(t *testing.T) {
	// GIVEN: IN 08:00, OUT 17:00 with break deduction off
	// WHEN: Reconciling
	// THEN: The full 9.00 hours stand

	cfg := schedule.Default()
	cfg.AutoDeductBreak = false
	engine, mem := newTestEngine(cfg)
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "9.00", result.Summary.HoursWorked.StringFixed(2))
	assert.False(t, result.Summary.AutoCorrected)
}

// =============================================================================
// CONSECUTIVE IN CORRECTION
// =============================================================================

func TestReconcile_ConsecutiveINs_SyntheticOutAtBreakStart(t *testing.T) {
	// GIVEN: IN 09:00, IN 13:30 and no OUT anywhere in the day
	// WHEN: Reconciling with auto-correction on
	// THEN: A synthetic OUT at 12:00 closes the morning, a synthetic OUT at
	//       17:00 closes the afternoon; 3 + 3.5 = 6.50 hours

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(9, 0), attendance.DirectionIn)
	punch(t, mem, at(13, 30), attendance.DirectionIn)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "6.50", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusPresent, result.Summary.Status)
	assert.True(t, result.Summary.AutoCorrected)
	assert.False(t, result.Summary.NeedsReview)

	synth := syntheticEvents(t, mem)
	require.Len(t, synth, 2)
	assert.Equal(t, attendance.DirectionOut, synth[0].Direction)
	assert.Equal(t, at(12, 0), synth[0].Timestamp)
	assert.Equal(t, attendance.ReasonMissingOut, synth[0].Reason)
	assert.Equal(t, at(17, 0), synth[1].Timestamp)
	assert.Equal(t, attendance.ReasonAutoClose, synth[1].Reason)
}

func TestReconcile_ConsecutiveINs_RealOutPrecedence(t *testing.T) {
	// GIVEN: IN 08:00, IN 13:00, real OUT 17:00 with auto-correction on
	// WHEN: Reconciling
	// THEN: The real OUT blocks all synthetic generation: the morning IN is
	//       dropped and the day is flagged instead of corrected

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(13, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "4.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusNeedsReview, result.Summary.Status)
	assert.True(t, result.Summary.NeedsReview)
	assert.True(t, result.Summary.Incomplete)
	assert.False(t, result.Summary.AutoCorrected)
	assert.Empty(t, syntheticEvents(t, mem))
}

func TestReconcile_ConsecutiveINs_CorrectionDisabled_FlagsInstead(t *testing.T) {
	// GIVEN: IN 08:00, IN 13:00, OUT 17:00 with auto-correction off
	// WHEN: Reconciling
	// THEN: No synthetic event; the open morning IN is dropped from totals
	//       and the day is flagged for review

	cfg := schedule.Default()
	cfg.EnableAutoCorrection = false
	engine, mem := newTestEngine(cfg)
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(13, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "4.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusNeedsReview, result.Summary.Status)
	assert.True(t, result.Summary.NeedsReview)
	assert.True(t, result.Summary.Incomplete)
	assert.False(t, result.Summary.AutoCorrected)
	assert.Empty(t, syntheticEvents(t, mem))
}

// =============================================================================
// END-OF-DAY OPEN IN
// =============================================================================

func TestReconcile_OpenINAtEndOfDay_AutoClosedAtShiftEnd(t *testing.T) {
	// GIVEN: A lone IN 08:00, never clocked out
	// WHEN: Reconciling with auto-close on
	// THEN: Synthetic OUT at shift end 17:00, break deducted, 8.00 hours

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "8.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusPresent, result.Summary.Status)
	assert.True(t, result.Summary.AutoCorrected)

	synth := syntheticEvents(t, mem)
	require.Len(t, synth, 1)
	assert.Equal(t, at(17, 0), synth[0].Timestamp)
	assert.Equal(t, attendance.ReasonAutoClose, synth[0].Reason)
}

func TestReconcile_OpenINAtEndOfDay_AutoCloseDisabled(t *testing.T) {
	// GIVEN: A lone IN 08:00 with auto-close off
	// WHEN: Reconciling
	// THEN: No synthetic event, zero hours, incomplete and flagged

	cfg := schedule.Default()
	cfg.AutoCloseMissingOut = false
	engine, mem := newTestEngine(cfg)
	punch(t, mem, at(8, 0), attendance.DirectionIn)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "0.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusNeedsReview, result.Summary.Status)
	assert.True(t, result.Summary.Incomplete)
	assert.True(t, result.Summary.NeedsReview)
	assert.Empty(t, syntheticEvents(t, mem))
}

// =============================================================================
// ORPHAN OUT AND MISSING SEGMENTS
// =============================================================================

func TestReconcile_OrphanOUT_FlagsReview(t *testing.T) {
	// GIVEN: A lone OUT 12:30 with no IN before it
	// WHEN: Reconciling
	// THEN: Zero hours, needs_review; no synthetic IN is ever fabricated

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(12, 30), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "0.00", result.Summary.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StatusNeedsReview, result.Summary.Status)
	assert.True(t, result.Summary.NeedsReview)
	assert.Empty(t, syntheticEvents(t, mem))
}

func TestReconcile_MissingMorningSegment_FlagsReview(t *testing.T) {
	// GIVEN: Only an afternoon: IN 13:00, OUT 17:00
	// WHEN: Reconciling
	// THEN: 4.00 hours counted, but the absent morning is flagged

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(13, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "4.00", result.Summary.HoursWorked.StringFixed(2))
	assert.True(t, result.Summary.NeedsReview)
}

func TestReconcile_MissingAfternoonSegment_FlagsReview(t *testing.T) {
	// GIVEN: Only a morning: IN 08:00, OUT 12:00
	// WHEN: Reconciling
	// THEN: 4.00 hours counted, afternoon absence flagged

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(12, 0), attendance.DirectionOut)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "4.00", result.Summary.HoursWorked.StringFixed(2))
	assert.True(t, result.Summary.NeedsReview)
}

// =============================================================================
// REAL OUT PRECEDENCE
// =============================================================================

func TestReconcile_RealOutArrivesLate_SyntheticNotPurged(t *testing.T) {
	// GIVEN: An auto-closed day (synthetic OUT at 17:00), then the real
	//        OUT punch arrives late at 17:30
	// WHEN: Reconciling again
	// THEN: The purge is skipped because a real OUT now exists; the stale
	//       synthetic survives and the conflict is flagged for review

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	reconcile(t, engine)
	require.Len(t, syntheticEvents(t, mem), 1, "day should have been auto-closed")

	punch(t, mem, at(17, 30), attendance.DirectionOut)
	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.True(t, result.Summary.NeedsReview, "conflicting real OUT must flag the day")
	assert.Len(t, syntheticEvents(t, mem), 1, "real OUT present: synthetics must not be purged")
}

func TestReconcile_OpenINWithRealOutElsewhere_FlaggedNotClosed(t *testing.T) {
	// GIVEN: IN 08:00, OUT 12:00, IN 13:00; the afternoon never closed,
	//        but the day does have a real OUT
	// WHEN: Reconciling with all corrections on
	// THEN: No auto-close; the open IN is left unpaired and the day is
	//       flagged incomplete for a human to sort out

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(12, 0), attendance.DirectionOut)
	punch(t, mem, at(13, 0), attendance.DirectionIn)

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "4.00", result.Summary.HoursWorked.StringFixed(2))
	assert.True(t, result.Summary.NeedsReview)
	assert.True(t, result.Summary.Incomplete)
	assert.False(t, result.Summary.AutoCorrected)
	assert.Empty(t, syntheticEvents(t, mem))
}

func TestReconcile_NoRealOut_SyntheticsPurgedAndRegenerated(t *testing.T) {
	// GIVEN: An auto-closed day, then a second IN punch arrives
	// WHEN: Reconciling again
	// THEN: No real OUT exists, so the old synthetic is purged and the
	//       rules regenerate from scratch against the new log

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	reconcile(t, engine)
	require.Len(t, syntheticEvents(t, mem), 1)

	punch(t, mem, at(13, 0), attendance.DirectionIn)
	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	// IN 08:00, IN 13:00: synthetic OUT at break start closes the morning,
	// auto-close at shift end closes the afternoon.
	assert.Equal(t, "8.00", result.Summary.HoursWorked.StringFixed(2))
	assert.True(t, result.Summary.AutoCorrected)

	synth := syntheticEvents(t, mem)
	require.Len(t, synth, 2)
	assert.Equal(t, at(12, 0), synth[0].Timestamp)
	assert.Equal(t, at(17, 0), synth[1].Timestamp)
}

// =============================================================================
// IDEMPOTENCE AND CONSERVATION
// =============================================================================

func TestReconcile_RepeatedRuns_Stable(t *testing.T) {
	// GIVEN: A day requiring two corrections
	// WHEN: Reconciling three times with no punch changes
	// THEN: Identical summary each run, synthetic count stays constant

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(13, 0), attendance.DirectionIn)

	first := reconcile(t, engine)
	second := reconcile(t, engine)
	third := reconcile(t, engine)

	for _, result := range []attendance.Result{second, third} {
		require.NotNil(t, result.Summary)
		assert.Equal(t, first.Summary.HoursWorked.StringFixed(2), result.Summary.HoursWorked.StringFixed(2))
		assert.Equal(t, first.Summary.Status, result.Summary.Status)
		assert.Equal(t, first.Summary.NeedsReview, result.Summary.NeedsReview)
		assert.Equal(t, first.Summary.AutoCorrected, result.Summary.AutoCorrected)
	}
	assert.Len(t, syntheticEvents(t, mem), 2)
}

// =============================================================================
// EMPTY DAYS AND PUNCH REMOVAL
// =============================================================================

func TestReconcile_NoEvents_AbsentSummary(t *testing.T) {
	// GIVEN: No punches at all for the day
	// WHEN: Reconciling
	// THEN: An absent summary with zero hours is written

	engine, _ := newTestEngine(schedule.Default())

	result := reconcile(t, engine)

	require.NotNil(t, result.Summary)
	assert.Equal(t, attendance.StatusAbsent, result.Summary.Status)
	assert.Equal(t, "0.00", result.Summary.HoursWorked.StringFixed(2))
	assert.False(t, result.Deleted)
}

func TestReconcile_LastPunchRemoved_SummaryDeleted(t *testing.T) {
	// GIVEN: An auto-closed day whose only real punch is then deleted
	// WHEN: Reconciling
	// THEN: Synthetics are purged, the day is empty, and the stale
	//       summary is deleted rather than left describing ghost punches

	engine, mem := newTestEngine(schedule.Default())
	ev := punch(t, mem, at(8, 0), attendance.DirectionIn)
	reconcile(t, engine)

	removed, err := mem.DeleteEvent(context.Background(), ev.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)

	result := reconcile(t, engine)

	assert.True(t, result.Deleted)
	assert.Nil(t, result.Summary)
	assert.Empty(t, syntheticEvents(t, mem))

	summary, err := mem.GetSummary(context.Background(), testEmployee, testDay())
	require.NoError(t, err)
	assert.Nil(t, summary)
}

// =============================================================================
// LOCKED DAYS
// =============================================================================

func TestReconcile_LockedDay_Refused(t *testing.T) {
	// GIVEN: A reconciled day locked for payroll
	// WHEN: A late punch arrives and reconciliation is attempted
	// THEN: ErrSummaryLocked; the frozen summary is untouched

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)
	first := reconcile(t, engine)

	locked := *first.Summary
	locked.Locked = true
	_, err := mem.UpsertSummary(context.Background(), locked)
	require.NoError(t, err)

	punch(t, mem, at(18, 0), attendance.DirectionIn)
	_, err = engine.Reconcile(context.Background(), testTenant, testEmployee, testDay())

	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrSummaryLocked)

	var lockedErr *attendance.LockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, testEmployee, lockedErr.EmployeeID)

	current, err := mem.GetSummary(context.Background(), testEmployee, testDay())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, first.Summary.HoursWorked.StringFixed(2), current.HoursWorked.StringFixed(2))
}

// =============================================================================
// MANUAL RESOLUTION
// =============================================================================

func TestResolve_ClearsReviewFlagWithoutRecomputing(t *testing.T) {
	// GIVEN: A flagged day (missing morning segment, 4.00 hours)
	// WHEN: A supervisor resolves it
	// THEN: needs_review cleared, status present, hours untouched

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(13, 0), attendance.DirectionIn)
	punch(t, mem, at(17, 0), attendance.DirectionOut)
	first := reconcile(t, engine)
	require.True(t, first.Summary.NeedsReview)

	resolved, err := engine.Resolve(context.Background(), testEmployee, testDay())
	require.NoError(t, err)

	assert.False(t, resolved.NeedsReview)
	assert.Equal(t, attendance.StatusPresent, resolved.Status)
	assert.Equal(t, "4.00", resolved.HoursWorked.StringFixed(2))

	events, err := mem.ListEvents(context.Background(), testEmployee, testDay(), true)
	require.NoError(t, err)
	assert.Len(t, events, 2, "resolution must not touch the punch log")
}

func TestResolve_NoSummary_NotFound(t *testing.T) {
	// GIVEN: A day that was never reconciled
	// WHEN: Resolving it
	// THEN: ErrSummaryNotFound

	engine, _ := newTestEngine(schedule.Default())

	_, err := engine.Resolve(context.Background(), testEmployee, testDay())

	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrSummaryNotFound)
}

func TestResolve_LockedDay_Refused(t *testing.T) {
	// GIVEN: A locked, flagged day
	// WHEN: Resolving it
	// THEN: ErrSummaryLocked; the lock must be lifted first

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(12, 30), attendance.DirectionOut)
	first := reconcile(t, engine)

	locked := *first.Summary
	locked.Locked = true
	_, err := mem.UpsertSummary(context.Background(), locked)
	require.NoError(t, err)

	_, err = engine.Resolve(context.Background(), testEmployee, testDay())

	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrSummaryLocked)
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestReconcile_ConcurrentRuns_SingleCoherentResult(t *testing.T) {
	// GIVEN: A day requiring synthetic corrections
	// WHEN: Ten reconciliations race on the same (employee, day)
	// THEN: Exactly the expected synthetics exist and the summary is coherent

	engine, mem := newTestEngine(schedule.Default())
	punch(t, mem, at(8, 0), attendance.DirectionIn)
	punch(t, mem, at(13, 0), attendance.DirectionIn)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Reconcile(context.Background(), testTenant, testEmployee, testDay())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, syntheticEvents(t, mem), 2)

	summary, err := mem.GetSummary(context.Background(), testEmployee, testDay())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "8.00", summary.HoursWorked.StringFixed(2))
}

// =============================================================================
// STORAGE FAILURES
// =============================================================================

// failingSchedules simulates an unreachable configuration source.
type failingSchedules struct{}

func (failingSchedules) GetScheduleConfig(context.Context, string) (schedule.Config, error) {
	return schedule.Config{}, errors.New("config service unavailable")
}

func TestReconcile_ScheduleSourceFailure_Propagates(t *testing.T) {
	// GIVEN: A schedule source that errors
	// WHEN: Reconciling
	// THEN: The infrastructure error propagates; nothing is written

	mem := store.NewTxMemory()
	engine := attendance.NewEngine(mem, failingSchedules{})

	_, err := engine.Reconcile(context.Background(), testTenant, testEmployee, testDay())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config service unavailable")

	summary, getErr := mem.GetSummary(context.Background(), testEmployee, testDay())
	require.NoError(t, getErr)
	assert.Nil(t, summary)
}
