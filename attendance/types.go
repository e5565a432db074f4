/*
Package attendance provides the attendance reconciliation engine.

PURPOSE:
  Converts a raw, unordered stream of clock-in/clock-out punches into a
  single daily attendance summary per employee. A fixed set of correction
  rules, configurable per tenant, handles the messy reality of punch data:
  missing punches, duplicate punches, partial shifts, break deduction.

KEY CONCEPTS IN THIS FILE (types.go):
  - PunchEvent: One clock event. Real (from a device or operator) or
    synthetic (fabricated by the engine to close an open interval).
  - AttendanceSummary: The computed record, at most one per employee-day.
  - Day: A calendar date with no time component, the reconciliation key.

DESIGN PRINCIPLES:
  1. Real data wins: synthetic events never survive alongside a real OUT
     that disagrees with them.
  2. Ambiguity is flagged, never raised: missing or contradictory punches
     become needs_review/is_incomplete flags, not errors.
  3. Precision: hours_worked uses decimal.Decimal, rounded to 2 places.
  4. Recomputation is idempotent: re-running reconciliation with unchanged
     logs yields an identical summary and no duplicate synthetic events.

SEE ALSO:
  - engine.go: The Reconcile operation
  - intervals.go: The interval matching rules
  - store.go: Persistence ports
*/
package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY - Calendar date, the reconciliation key
// =============================================================================

// Day is a calendar date with no time-of-day component. All punches carry
// full timestamps; summaries and reconciliation runs are keyed by Day.
type Day struct {
	Time time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar date.
func DayOf(t time.Time) Day {
	return Day{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses "2006-01-02".
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day{Time: t}, nil
}

func (d Day) Equal(other Day) bool  { return d.normalize().Equal(other.normalize()) }
func (d Day) Before(other Day) bool { return d.normalize().Before(other.normalize()) }
func (d Day) After(other Day) bool  { return d.normalize().After(other.normalize()) }
func (d Day) AddDays(n int) Day     { return Day{Time: d.Time.AddDate(0, 0, n)} }
func (d Day) IsZero() bool          { return d.Time.IsZero() }

// Start is midnight at the start of the day; End is midnight of the next
// day. Together they bound the half-open window [Start, End) that a punch
// timestamp must fall in to belong to this day.
func (d Day) Start() time.Time { return d.normalize() }
func (d Day) End() time.Time   { return d.normalize().AddDate(0, 0, 1) }

func (d Day) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

func (d Day) String() string { return d.normalize().Format("2006-01-02") }

// =============================================================================
// PUNCH EVENT - One clock event
// =============================================================================

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// PunchEvent is a single clock-in or clock-out.
//
// Real events come from a device or an operator and are never touched by
// the engine. Synthetic events are fabricated by the engine during
// reconciliation to close an otherwise-open interval; they carry a Reason
// and are deleted and regenerated whenever the day is recomputed (unless a
// real OUT exists, in which case they are left alone).
type PunchEvent struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time // second precision
	Direction  Direction
	Synthetic  bool
	Reason     string // present only on synthetic events
	CreatedAt  time.Time
}

// Synthetic event reasons written by the engine.
const (
	ReasonMissingOut = "auto-corrected: missing OUT before next IN"
	ReasonAutoClose  = "auto-corrected: shift closed at configured end"
)

// =============================================================================
// ATTENDANCE SUMMARY - One computed record per employee-day
// =============================================================================

type Status string

const (
	// StatusAbsent: no punch events existed for the day.
	StatusAbsent Status = "absent"
	// StatusPresent: a clean day, or one fully auto-corrected.
	StatusPresent Status = "present"
	// StatusIncomplete: an interval could not be closed and correction was off.
	StatusIncomplete Status = "incomplete"
	// StatusNeedsReview: a human must adjudicate ambiguous punch data.
	StatusNeedsReview Status = "needs_review"
)

// AttendanceSummary is the engine's output: at most one per (employee, day).
type AttendanceSummary struct {
	EmployeeID  string
	Date        Day
	HoursWorked decimal.Decimal // non-negative, 2-decimal precision
	Status      Status

	Incomplete    bool
	NeedsReview   bool
	AutoCorrected bool

	// Locked freezes the summary after payroll finalization. The engine
	// never deletes or overwrites a locked summary.
	Locked bool

	UpdatedAt time.Time
}

// hoursFromSeconds converts total worked seconds into hours, clamped at
// zero and rounded to 2 decimals.
func hoursFromSeconds(seconds int64) decimal.Decimal {
	if seconds < 0 {
		seconds = 0
	}
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)).Round(2)
}
