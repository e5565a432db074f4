/*
intervals.go - Interval matching rules

PURPOSE:
  Walks a day's ordered punch events with an "open IN" cursor and pairs
  them into half-open work intervals [start, end). Where the pairing breaks
  down (consecutive INs, orphan OUTs, an IN the day never closes) the
  correction toggles decide between fabricating a synthetic OUT and
  flagging the day for human review.

RULES, IN SCAN ORDER:
  IN with cursor open    -> missing OUT: synthesize OUT at break start
                            (auto-correction on, no real OUT that day)
                            or flag and drop the open IN
  OUT with cursor open   -> close [open IN, OUT)
  OUT with no cursor     -> orphan, needs_review
  end of scan, open IN   -> close at shift end (toggles on), else flag

POST-SCAN ADJUSTMENTS:
  - Single whole-shift interval: deduct the configured break
  - Missing morning/afternoon segment: needs_review
  - Consistency guards: negative totals clamp to zero, overlapping
    intervals force needs_review

SEE ALSO:
  - engine.go: The transactional wrapper around this scan
  - schedule/config.go: The toggle definitions
*/
package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/warp/attendance-engine/schedule"
)

// =============================================================================
// INTERVAL - One matched work span
// =============================================================================

// interval is a half-open span [Start, End) of worked time.
type interval struct {
	Start time.Time
	End   time.Time
}

func (iv interval) seconds() int64 {
	return int64(iv.End.Sub(iv.Start) / time.Second)
}

// scanOutcome is everything interval computation derives from one day.
type scanOutcome struct {
	Intervals     []interval
	TotalSeconds  int64
	NeedsReview   bool
	Incomplete    bool
	AutoCorrected bool
}

func (o *scanOutcome) close(iv interval) {
	o.Intervals = append(o.Intervals, iv)
	o.TotalSeconds += iv.seconds()
}

// =============================================================================
// SCAN
// =============================================================================

// computeIntervals applies the correction rules to the full ordered event
// list. Synthetic events are inserted through logs as the scan discovers
// the need for them; the store treats identical duplicates as no-ops, so
// re-running the scan over unchanged logs writes nothing new.
//
// hasRealOut reflects the safeguard read of real events only. It gates
// every synthetic insertion: once a real OUT exists for the day, the
// engine neither fabricates nor removes events, only flags.
func (e *Engine) computeIntervals(ctx context.Context, logs LogStore, employeeID string, day Day, events []PunchEvent, hasRealOut bool, cfg schedule.Config) (scanOutcome, error) {
	var out scanOutcome

	dayBase := day.Start()
	breakStart := cfg.BreakStart.On(dayBase)
	breakEnd := cfg.BreakEnd.On(dayBase)
	shiftStart := cfg.ShiftStart.On(dayBase)
	shiftEnd := cfg.ShiftEnd.On(dayBase)

	var openIn *PunchEvent
	for i := range events {
		ev := &events[i]
		switch ev.Direction {
		case DirectionIn:
			if openIn != nil {
				// Consecutive INs. The scan is ordered, so no OUT of any
				// kind lies between the open IN and this one: the first
				// interval was never closed.
				if cfg.EnableAutoCorrection && !hasRealOut {
					if err := logs.InsertSyntheticEvent(ctx, employeeID, breakStart, DirectionOut, ReasonMissingOut); err != nil {
						return out, err
					}
					out.close(interval{Start: openIn.Timestamp, End: breakStart})
					out.AutoCorrected = true
				} else {
					// Correction off, or a real OUT owns the day:
					// the open IN is dropped from totals.
					out.NeedsReview = true
					out.Incomplete = true
				}
			}
			openIn = ev

		case DirectionOut:
			if openIn == nil {
				// Orphan OUT.
				out.NeedsReview = true
				continue
			}
			out.close(interval{Start: openIn.Timestamp, End: ev.Timestamp})
			openIn = nil
		}
	}

	if openIn != nil {
		switch {
		case !hasRealOut && cfg.EnableAutoCorrection && cfg.AutoCloseMissingOut:
			if err := logs.InsertSyntheticEvent(ctx, employeeID, shiftEnd, DirectionOut, ReasonAutoClose); err != nil {
				return out, err
			}
			out.close(interval{Start: openIn.Timestamp, End: shiftEnd})
			out.AutoCorrected = true
		case !hasRealOut:
			out.Incomplete = true
			out.NeedsReview = true
		default:
			// A real OUT exists elsewhere in the day but did not pair with
			// this IN. No pairing heuristic is applied; a human decides.
			out.Incomplete = true
			out.NeedsReview = true
			e.logf("attendance: employee %s day %s has an open IN at %s despite a real OUT elsewhere; flagged for review",
				employeeID, day, openIn.Timestamp.Format("15:04:05"))
		}
	}

	// Whole-shift break deduction: only when the day collapsed to a single
	// interval spanning the entire configured shift.
	if len(out.Intervals) == 1 && cfg.EnableAutoCorrection && cfg.AutoDeductBreak {
		iv := out.Intervals[0]
		if !iv.Start.After(shiftStart) && !iv.End.Before(shiftEnd) {
			out.TotalSeconds -= int64(cfg.BreakMinutes()) * 60
			out.AutoCorrected = true
		}
	}

	// Missing-segment detection: a morning that never happened or an
	// afternoon that never happened is suspicious even when the intervals
	// themselves are well formed.
	if len(out.Intervals) > 0 {
		if out.Intervals[0].Start.After(breakStart) {
			out.NeedsReview = true
		}
		if out.Intervals[len(out.Intervals)-1].End.Before(breakEnd) {
			out.NeedsReview = true
		}
	}

	// Consistency guards. These should be unreachable if the rules above
	// are correct; they keep a bad day from producing negative hours.
	if out.TotalSeconds < 0 {
		out.TotalSeconds = 0
		out.NeedsReview = true
	}
	if overlapping(out.Intervals) {
		out.NeedsReview = true
	}

	return out, nil
}

// overlapping reports whether any two closed intervals intersect.
func overlapping(ivs []interval) bool {
	if len(ivs) < 2 {
		return false
	}
	sorted := make([]interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.Before(sorted[i-1].End) {
			return true
		}
	}
	return false
}
