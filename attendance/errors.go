/*
errors.go - Error types for the attendance domain

ERROR CATEGORIES:
  1. Business ambiguity (missing punches, orphan events, overlapping
     intervals) is NEVER an error: it is absorbed into the needs_review /
     is_incomplete flags on the summary. A human resolves it via Resolve.
  2. Infrastructure failure (storage unavailable) propagates to the caller
     unmodified; the engine performs no automatic retry.
  3. The sentinels below cover the narrow cases where an operation cannot
     proceed at all.
*/
package attendance

import (
	"errors"
	"fmt"
)

var (
	// ErrSummaryNotFound is returned by Resolve when no summary exists for
	// the requested employee-day.
	ErrSummaryNotFound = errors.New("attendance summary not found")

	// ErrSummaryLocked is returned when an operation would modify a summary
	// that has been administratively frozen (payroll finalization).
	ErrSummaryLocked = errors.New("attendance summary is locked")
)

// LockedError carries the key of the frozen summary.
type LockedError struct {
	EmployeeID string
	Date       Day
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("summary for %s on %s is locked", e.EmployeeID, e.Date)
}

func (e *LockedError) Unwrap() error { return ErrSummaryLocked }
