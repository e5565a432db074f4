/*
resolve.go - Manual resolution of flagged summaries

PURPOSE:
  An administrative override for the needs_review flag. A human has looked
  at the ambiguous punch data and signed off on the computed hours; the
  flag is cleared and the status forced to present. Nothing is recomputed:
  hours_worked, the punch log, and is_incomplete are left exactly as the
  last reconciliation wrote them.

  This is deliberately NOT a correction rule. The engine never calls it.
*/
package attendance

import (
	"context"
	"fmt"
)

// Resolve clears the review flag on an existing summary and forces its
// status to present. Returns ErrSummaryNotFound when the day has no
// summary and ErrSummaryLocked when it is administratively frozen.
func (e *Engine) Resolve(ctx context.Context, employeeID string, day Day) (AttendanceSummary, error) {
	mu := e.lockFor(employeeID, day)
	mu.Lock()
	defer mu.Unlock()

	var resolved AttendanceSummary
	err := e.Store.WithTx(ctx, func(s Store) error {
		summary, err := s.GetSummary(ctx, employeeID, day)
		if err != nil {
			return err
		}
		if summary == nil {
			return fmt.Errorf("resolve %s on %s: %w", employeeID, day, ErrSummaryNotFound)
		}
		if summary.Locked {
			return &LockedError{EmployeeID: employeeID, Date: day}
		}

		summary.NeedsReview = false
		summary.Status = StatusPresent

		resolved, err = s.UpsertSummary(ctx, *summary)
		return err
	})
	if err != nil {
		return AttendanceSummary{}, err
	}
	return resolved, nil
}
