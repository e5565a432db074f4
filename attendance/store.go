/*
store.go - Persistence ports consumed by the engine

PURPOSE:
  The engine reads and writes punch logs and summaries through these
  interfaces; it never sees a database. The surrounding storage layer
  (store/sqlite in this repo, memory for tests) implements them.

TENANT SCOPING:
  There is no ambient tenant filter. Every call carries explicit
  employee-scoped keys; tenant resolution happens at the schedule lookup,
  which takes an explicit tenant id.

TRANSACTIONAL BOUNDARY:
  Reconcile runs its entire purge-then-regenerate sequence inside one
  TxStore.WithTx call, so a crash or error mid-run leaves the previous
  logs and summary intact.

SEE ALSO:
  - store/sqlite/sqlite.go: SQLite implementation
  - attendance/store/memory.go: In-memory implementation for tests
*/
package attendance

import (
	"context"
	"time"
)

// =============================================================================
// LOG STORE - Ordered punch events per employee-day
// =============================================================================

type LogStore interface {
	// ListEvents returns the day's events ordered by timestamp ascending
	// (ties broken by creation order, stable within a reconciliation run).
	// With includeSynthetic false only real events are returned.
	ListEvents(ctx context.Context, employeeID string, day Day, includeSynthetic bool) ([]PunchEvent, error)

	// InsertSyntheticEvent records an engine-generated event. Inserting an
	// identical synthetic event (same employee, timestamp, direction) that
	// already exists is a no-op, not an error. This is what makes
	// regeneration idempotent.
	InsertSyntheticEvent(ctx context.Context, employeeID string, at time.Time, dir Direction, reason string) error

	// DeleteSyntheticEvents removes all synthetic events for the day.
	DeleteSyntheticEvents(ctx context.Context, employeeID string, day Day) error
}

// =============================================================================
// SUMMARY STORE - At most one summary per employee-day
// =============================================================================

type SummaryStore interface {
	// GetSummary returns nil (no error) when no summary exists.
	GetSummary(ctx context.Context, employeeID string, day Day) (*AttendanceSummary, error)

	// UpsertSummary creates or overwrites the summary for its
	// (EmployeeID, Date) key and returns the stored record.
	UpsertSummary(ctx context.Context, summary AttendanceSummary) (AttendanceSummary, error)

	// DeleteSummary removes the summary. Deleting a missing summary is not
	// an error.
	DeleteSummary(ctx context.Context, employeeID string, day Day) error
}

// Store is the full surface the engine needs within one unit of work.
type Store interface {
	LogStore
	SummaryStore
}

// TxStore executes a function atomically: either every write inside fn is
// persisted or none is.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}
