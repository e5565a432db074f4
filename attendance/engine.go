/*
engine.go - The reconciliation operation

PURPOSE:
  Reconcile derives the single attendance summary for one employee-day
  from its punch log. It is the only writer of synthetic events and
  summaries, and it is safe to re-run after any punch is added or removed.

THE SAFETY INVARIANT:
  Synthetic data must never survive alongside a real OUT that disagrees
  with it. The engine enforces this with a two-phase algorithm inside one
  storage transaction:
    Phase 1 (purge-if-safe):      if the day has no real OUT, delete all
                                  synthetic events; they will be
                                  regenerated if still needed.
    Phase 2 (regenerate-if-needed): re-scan the full log and fabricate
                                  only the synthetic OUTs the rules call
                                  for, idempotently.
  When a real OUT exists the purge is skipped entirely: real data always
  takes precedence and the stale synthetics are left untouched.

CONCURRENCY:
  Concurrent reconciliations of the same (employee, day) are serialized
  with a keyed mutex so purge and regenerate cannot interleave. Different
  keys run fully in parallel; the store's own transaction provides the
  write atomicity.

ERROR CONTRACT:
  Business ambiguity never surfaces as an error: it lands in the summary
  flags. Only storage failure propagates, unwrapped and un-retried.

SEE ALSO:
  - intervals.go: The correction rules
  - resolve.go: The administrative override
*/
package attendance

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/warp/attendance-engine/schedule"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes attendance summaries from punch logs.
type Engine struct {
	Store     TxStore
	Schedules schedule.Source

	// Logf receives diagnostic warnings (the inconsistent-cursor case).
	// Defaults to log.Printf.
	Logf func(format string, args ...any)

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(store TxStore, schedules schedule.Source) *Engine {
	return &Engine{
		Store:     store,
		Schedules: schedules,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Result is the outcome of one reconciliation run: either an upserted
// summary, or Deleted when the last punch of a day was removed and the
// summary went with it.
type Result struct {
	Summary *AttendanceSummary
	Deleted bool
}

// =============================================================================
// RECONCILE
// =============================================================================

// Reconcile recomputes the attendance summary for one employee-day.
//
// The whole sequence (safeguard read, synthetic purge, full read, interval
// computation, summary upsert/delete) runs inside one store transaction,
// serialized per (employee, day) key. Callers invoke it after every punch
// mutation; its failure must not fail the mutation itself (log and move on,
// a later run self-heals).
func (e *Engine) Reconcile(ctx context.Context, tenantID, employeeID string, day Day) (Result, error) {
	mu := e.lockFor(employeeID, day)
	mu.Lock()
	defer mu.Unlock()

	cfg, err := e.Schedules.GetScheduleConfig(ctx, tenantID)
	if err != nil {
		return Result{}, fmt.Errorf("load schedule config for tenant %s: %w", tenantID, err)
	}

	var result Result
	err = e.Store.WithTx(ctx, func(s Store) error {
		existing, err := s.GetSummary(ctx, employeeID, day)
		if err != nil {
			return err
		}
		if existing != nil && existing.Locked {
			return &LockedError{EmployeeID: employeeID, Date: day}
		}

		// Step 1: safeguard read, real events only.
		realEvents, err := s.ListEvents(ctx, employeeID, day, false)
		if err != nil {
			return err
		}
		hasRealOut := false
		for _, ev := range realEvents {
			if ev.Direction == DirectionOut {
				hasRealOut = true
				break
			}
		}

		// Step 2: purge synthetics, unless a real OUT anchors the day.
		if !hasRealOut {
			if err := s.DeleteSyntheticEvents(ctx, employeeID, day); err != nil {
				return err
			}
		}

		// Step 3: full reload, real + surviving synthetic.
		events, err := s.ListEvents(ctx, employeeID, day, true)
		if err != nil {
			return err
		}

		// Step 4: nothing left for this day. An existing summary is
		// removed (it described punches that no longer exist); with no
		// summary either, the day is recorded as absent below.
		if len(events) == 0 && existing != nil {
			if err := s.DeleteSummary(ctx, employeeID, day); err != nil {
				return err
			}
			result = Result{Deleted: true}
			return nil
		}

		// Step 5: interval computation.
		var outcome scanOutcome
		if len(events) > 0 {
			outcome, err = e.computeIntervals(ctx, s, employeeID, day, events, hasRealOut, cfg)
			if err != nil {
				return err
			}
		}

		// Step 6: upsert.
		saved, err := s.UpsertSummary(ctx, AttendanceSummary{
			EmployeeID:    employeeID,
			Date:          day,
			HoursWorked:   hoursFromSeconds(outcome.TotalSeconds),
			Status:        deriveStatus(len(events), outcome),
			Incomplete:    outcome.Incomplete,
			NeedsReview:   outcome.NeedsReview,
			AutoCorrected: outcome.AutoCorrected,
		})
		if err != nil {
			return err
		}
		result = Result{Summary: &saved}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// deriveStatus maps the scan flags onto the summary status. needs_review
// outranks incomplete; a day with no events at all is absent.
func deriveStatus(eventCount int, out scanOutcome) Status {
	switch {
	case eventCount == 0:
		return StatusAbsent
	case out.NeedsReview:
		return StatusNeedsReview
	case out.Incomplete:
		return StatusIncomplete
	default:
		return StatusPresent
	}
}

// =============================================================================
// PER-KEY SERIALIZATION
// =============================================================================

// lockFor returns the mutex serializing one (employee, day) key. Entries
// are never evicted; the map is bounded by active employee-days.
func (e *Engine) lockFor(employeeID string, day Day) *sync.Mutex {
	key := employeeID + "|" + day.String()

	e.mu.Lock()
	defer e.mu.Unlock()
	mu, ok := e.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		e.locks[key] = mu
	}
	return mu
}

func (e *Engine) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
