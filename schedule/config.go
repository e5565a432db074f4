/*
Package schedule provides per-tenant shift configuration.

PURPOSE:
  Every tenant can define its own working day: shift start/end, the break
  window, the maximum shift length, and three correction toggles that drive
  the attendance reconciliation engine. Tenants without an explicit
  configuration fall back to a fixed system default.

KEY CONCEPTS:
  - TimeOfDay: a clock time with no date attached (e.g. 08:00). Stored as
    minutes since midnight so comparisons and arithmetic are integer ops.
  - Config: the full per-tenant shift definition.
  - Source: the read port the engine consumes. Implementations must apply
    the Default() fallback themselves so callers never see "no config".

CORRECTION TOGGLES:
  EnableAutoCorrection is the master switch: when false the engine never
  fabricates punch events, and every ambiguous day is flagged for human
  review instead. AutoCloseMissingOut and AutoDeductBreak refine what the
  engine may do when the master switch is on.

SEE ALSO:
  - attendance/engine.go: The consumer of Config
  - store/sqlite/sqlite.go: Persistent Source implementation
*/
package schedule

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// TIME OF DAY - Clock time without a date
// =============================================================================

// TimeOfDay is a clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "15:04" or "15:04:05" clock strings.
// Seconds are truncated; shift boundaries are minute-granular.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustTimeOfDay is ParseTimeOfDay for compile-time constants in defaults
// and tests. Panics on malformed input.
func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return tod
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// On anchors the clock time to the date of base, in base's location.
func (t TimeOfDay) On(base time.Time) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, base.Location())
}

// Sub returns the difference in whole minutes.
func (t TimeOfDay) Sub(other TimeOfDay) int { return int(t) - int(other) }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t > other }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// =============================================================================
// CONFIG - Per-tenant shift definition
// =============================================================================

type Config struct {
	ShiftStart TimeOfDay
	BreakStart TimeOfDay
	BreakEnd   TimeOfDay
	ShiftEnd   TimeOfDay

	MaxShiftHours int

	// AutoCloseMissingOut closes a still-open day at ShiftEnd.
	AutoCloseMissingOut bool
	// AutoDeductBreak subtracts the break from a single whole-shift interval.
	AutoDeductBreak bool
	// EnableAutoCorrection is the master switch. When false, no synthetic
	// events are ever created; ambiguity becomes needs_review.
	EnableAutoCorrection bool
}

// Default is the system fallback applied when a tenant has no explicit
// configuration: 08:00-17:00 shift, 12:00-13:00 break, 8h max, all
// correction toggles on.
func Default() Config {
	return Config{
		ShiftStart:           MustTimeOfDay("08:00"),
		BreakStart:           MustTimeOfDay("12:00"),
		BreakEnd:             MustTimeOfDay("13:00"),
		ShiftEnd:             MustTimeOfDay("17:00"),
		MaxShiftHours:        8,
		AutoCloseMissingOut:  true,
		AutoDeductBreak:      true,
		EnableAutoCorrection: true,
	}
}

// BreakMinutes is the configured break duration in whole minutes.
func (c Config) BreakMinutes() int { return c.BreakEnd.Sub(c.BreakStart) }

// Validate checks internal ordering: shift start before end, break ordered
// and contained in the shift, sane max hours.
func (c Config) Validate() error {
	if !c.ShiftStart.Before(c.ShiftEnd) {
		return fmt.Errorf("shift start %s must be before shift end %s", c.ShiftStart, c.ShiftEnd)
	}
	if !c.BreakStart.Before(c.BreakEnd) {
		return fmt.Errorf("break start %s must be before break end %s", c.BreakStart, c.BreakEnd)
	}
	if c.BreakStart.Before(c.ShiftStart) || c.ShiftEnd.Before(c.BreakEnd) {
		return fmt.Errorf("break %s-%s must fall within shift %s-%s",
			c.BreakStart, c.BreakEnd, c.ShiftStart, c.ShiftEnd)
	}
	if c.MaxShiftHours <= 0 || c.MaxShiftHours > 24 {
		return fmt.Errorf("max shift hours %d out of range", c.MaxShiftHours)
	}
	return nil
}

// =============================================================================
// SOURCE - Read port consumed by the engine
// =============================================================================

// Source supplies the shift configuration for a tenant. Implementations
// return Default() when the tenant has no explicit configuration; callers
// never handle a missing config.
type Source interface {
	GetScheduleConfig(ctx context.Context, tenantID string) (Config, error)
}

// StaticSource returns the same Config for every tenant. Used in tests and
// by the demo in-memory wiring.
type StaticSource struct {
	Config Config
}

func (s StaticSource) GetScheduleConfig(ctx context.Context, tenantID string) (Config, error) {
	return s.Config, nil
}
