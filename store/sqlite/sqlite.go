/*
Package sqlite provides a SQLite-backed implementation of the storage ports.

PURPOSE:
  Implements the attendance log/summary ports (attendance.TxStore), the
  schedule source (schedule.Source), and the real-punch CRUD the
  surrounding API layer needs. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  punch_events:         Real and synthetic clock events
  attendance_summaries: At most one row per (employee_id, date)
  tenant_schedules:     Per-tenant shift configuration

DEFENSIVE INDEXES:
  The unique partial index on synthetic (employee_id, timestamp, direction)
  is the last line of defense for idempotent regeneration: even if two
  reconciliation runs raced past the in-process lock, the second identical
  synthetic insert degrades to a no-op instead of a duplicate row. The
  summary primary key enforces one-summary-per-day the same way.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite WAL mode. WithTx
  holds the write lock for the whole transaction; the transactional view
  passes the *sql.Tx to the shared query helpers, never back through the
  locked public methods.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/attendance.db")  // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := attendance.NewEngine(store, store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - attendance/store.go: Port definitions
  - attendance/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/schedule"
)

// Store implements attendance.TxStore and schedule.Source using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One pooled connection: the store serializes access itself, and this
	// keeps ":memory:" databases from vanishing between pool connections.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Punch events (real and synthetic)
	CREATE TABLE IF NOT EXISTS punch_events (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		direction TEXT NOT NULL CHECK (direction IN ('in', 'out')),
		synthetic BOOLEAN NOT NULL DEFAULT FALSE,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_punch_events_employee_time
		ON punch_events(employee_id, timestamp);

	-- CRITICAL: at most one synthetic event per (employee, timestamp,
	-- direction). Makes synthetic regeneration idempotent at the storage
	-- level even if two reconciliation runs race past the in-process lock.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_punch_events_synthetic_unique
		ON punch_events(employee_id, timestamp, direction) WHERE synthetic;

	-- Attendance summaries: the primary key IS the one-per-day invariant.
	CREATE TABLE IF NOT EXISTS attendance_summaries (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hours_worked TEXT NOT NULL,
		status TEXT NOT NULL,
		is_incomplete BOOLEAN NOT NULL DEFAULT FALSE,
		needs_review BOOLEAN NOT NULL DEFAULT FALSE,
		is_auto_corrected BOOLEAN NOT NULL DEFAULT FALSE,
		locked BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	-- Tenant shift configuration
	CREATE TABLE IF NOT EXISTS tenant_schedules (
		tenant_id TEXT PRIMARY KEY,
		shift_start TEXT NOT NULL,
		break_start TEXT NOT NULL,
		break_end TEXT NOT NULL,
		shift_end TEXT NOT NULL,
		max_shift_hours INTEGER NOT NULL,
		auto_close_missing_out BOOLEAN NOT NULL,
		auto_deduct_break BOOLEAN NOT NULL,
		enable_auto_correction BOOLEAN NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// querier is satisfied by both *sql.DB and *sql.Tx so the same helpers
// serve plain calls and transactional views.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// LOG STORE (attendance.LogStore interface)
// =============================================================================

func (s *Store) ListEvents(ctx context.Context, employeeID string, day attendance.Day, includeSynthetic bool) ([]attendance.PunchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listEvents(ctx, s.db, employeeID, day, includeSynthetic)
}

func listEvents(ctx context.Context, q querier, employeeID string, day attendance.Day, includeSynthetic bool) ([]attendance.PunchEvent, error) {
	query := `
		SELECT id, employee_id, timestamp, direction, synthetic, reason, created_at
		FROM punch_events
		WHERE employee_id = ? AND timestamp >= ? AND timestamp < ?
	`
	if !includeSynthetic {
		query += " AND NOT synthetic"
	}
	query += " ORDER BY timestamp ASC, created_at ASC, id ASC"

	rows, err := q.QueryContext(ctx, query, employeeID,
		day.Start().UTC().Format(time.RFC3339), day.End().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query punch events: %w", err)
	}
	defer rows.Close()

	var events []attendance.PunchEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanEvent(rows *sql.Rows) (attendance.PunchEvent, error) {
	var (
		ev        attendance.PunchEvent
		timestamp string
		reason    sql.NullString
		createdAt string
	)
	if err := rows.Scan(&ev.ID, &ev.EmployeeID, &timestamp, &ev.Direction, &ev.Synthetic, &reason, &createdAt); err != nil {
		return ev, fmt.Errorf("failed to scan punch event: %w", err)
	}
	ev.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
	ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	ev.Reason = reason.String
	return ev, nil
}

func (s *Store) InsertSyntheticEvent(ctx context.Context, employeeID string, at time.Time, dir attendance.Direction, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertSyntheticEvent(ctx, s.db, employeeID, at, dir, reason)
}

func insertSyntheticEvent(ctx context.Context, q querier, employeeID string, at time.Time, dir attendance.Direction, reason string) error {
	query := `
		INSERT INTO punch_events (id, employee_id, timestamp, direction, synthetic, reason, created_at)
		VALUES (?, ?, ?, ?, TRUE, ?, ?)
	`
	_, err := q.ExecContext(ctx, query,
		uuid.NewString(),
		employeeID,
		at.UTC().Truncate(time.Second).Format(time.RFC3339),
		dir,
		reason,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			// Identical synthetic already exists: required no-op.
			return nil
		}
		return fmt.Errorf("failed to insert synthetic event: %w", err)
	}
	return nil
}

func (s *Store) DeleteSyntheticEvents(ctx context.Context, employeeID string, day attendance.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteSyntheticEvents(ctx, s.db, employeeID, day)
}

func deleteSyntheticEvents(ctx context.Context, q querier, employeeID string, day attendance.Day) error {
	_, err := q.ExecContext(ctx,
		`DELETE FROM punch_events WHERE employee_id = ? AND synthetic AND timestamp >= ? AND timestamp < ?`,
		employeeID,
		day.Start().UTC().Format(time.RFC3339), day.End().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to delete synthetic events: %w", err)
	}
	return nil
}

// =============================================================================
// SUMMARY STORE (attendance.SummaryStore interface)
// =============================================================================

func (s *Store) GetSummary(ctx context.Context, employeeID string, day attendance.Day) (*attendance.AttendanceSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getSummary(ctx, s.db, employeeID, day)
}

func getSummary(ctx context.Context, q querier, employeeID string, day attendance.Day) (*attendance.AttendanceSummary, error) {
	row := q.QueryRowContext(ctx, `
		SELECT employee_id, date, hours_worked, status, is_incomplete, needs_review,
		       is_auto_corrected, locked, updated_at
		FROM attendance_summaries
		WHERE employee_id = ? AND date = ?
	`, employeeID, day.String())

	summary, err := scanSummaryRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan summary: %w", err)
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummaryRow(row rowScanner) (*attendance.AttendanceSummary, error) {
	var (
		summary   attendance.AttendanceSummary
		date      string
		hours     string
		updatedAt string
	)
	err := row.Scan(&summary.EmployeeID, &date, &hours, &summary.Status,
		&summary.Incomplete, &summary.NeedsReview, &summary.AutoCorrected,
		&summary.Locked, &updatedAt)
	if err != nil {
		return nil, err
	}

	summary.Date, _ = attendance.ParseDay(date)
	summary.HoursWorked, _ = decimal.NewFromString(hours)
	summary.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &summary, nil
}

func (s *Store) UpsertSummary(ctx context.Context, summary attendance.AttendanceSummary) (attendance.AttendanceSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return upsertSummary(ctx, s.db, summary)
}

func upsertSummary(ctx context.Context, q querier, summary attendance.AttendanceSummary) (attendance.AttendanceSummary, error) {
	summary.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO attendance_summaries
		(employee_id, date, hours_worked, status, is_incomplete, needs_review,
		 is_auto_corrected, locked, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			hours_worked = excluded.hours_worked,
			status = excluded.status,
			is_incomplete = excluded.is_incomplete,
			needs_review = excluded.needs_review,
			is_auto_corrected = excluded.is_auto_corrected,
			locked = excluded.locked,
			updated_at = excluded.updated_at
	`
	_, err := q.ExecContext(ctx, query,
		summary.EmployeeID,
		summary.Date.String(),
		summary.HoursWorked.StringFixed(2),
		summary.Status,
		summary.Incomplete,
		summary.NeedsReview,
		summary.AutoCorrected,
		summary.Locked,
		summary.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return attendance.AttendanceSummary{}, fmt.Errorf("failed to upsert summary: %w", err)
	}
	return summary, nil
}

func (s *Store) DeleteSummary(ctx context.Context, employeeID string, day attendance.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteSummary(ctx, s.db, employeeID, day)
}

func deleteSummary(ctx context.Context, q querier, employeeID string, day attendance.Day) error {
	_, err := q.ExecContext(ctx,
		`DELETE FROM attendance_summaries WHERE employee_id = ? AND date = ?`,
		employeeID, day.String())
	if err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}

// ListSummaries returns an employee's summaries in [from, to], in date order.
func (s *Store) ListSummaries(ctx context.Context, employeeID string, from, to attendance.Day) ([]attendance.AttendanceSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, date, hours_worked, status, is_incomplete, needs_review,
		       is_auto_corrected, locked, updated_at
		FROM attendance_summaries
		WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, employeeID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.AttendanceSummary
	for rows.Next() {
		summary, err := scanSummaryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, *summary)
	}
	return summaries, rows.Err()
}

// =============================================================================
// TRANSACTIONAL STORE (attendance.TxStore interface)
// =============================================================================

// WithTx executes fn within one database transaction. The write lock is
// held for the duration so the transactional view can use the shared
// helpers without re-locking.
func (s *Store) WithTx(ctx context.Context, fn func(store attendance.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// txStore is the transactional view handed to WithTx callbacks.
type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) ListEvents(ctx context.Context, employeeID string, day attendance.Day, includeSynthetic bool) ([]attendance.PunchEvent, error) {
	return listEvents(ctx, ts.tx, employeeID, day, includeSynthetic)
}

func (ts *txStore) InsertSyntheticEvent(ctx context.Context, employeeID string, at time.Time, dir attendance.Direction, reason string) error {
	return insertSyntheticEvent(ctx, ts.tx, employeeID, at, dir, reason)
}

func (ts *txStore) DeleteSyntheticEvents(ctx context.Context, employeeID string, day attendance.Day) error {
	return deleteSyntheticEvents(ctx, ts.tx, employeeID, day)
}

func (ts *txStore) GetSummary(ctx context.Context, employeeID string, day attendance.Day) (*attendance.AttendanceSummary, error) {
	return getSummary(ctx, ts.tx, employeeID, day)
}

func (ts *txStore) UpsertSummary(ctx context.Context, summary attendance.AttendanceSummary) (attendance.AttendanceSummary, error) {
	return upsertSummary(ctx, ts.tx, summary)
}

func (ts *txStore) DeleteSummary(ctx context.Context, employeeID string, day attendance.Day) error {
	return deleteSummary(ctx, ts.tx, employeeID, day)
}

// =============================================================================
// PUNCH CRUD (used by the API layer, never by the reconciliation engine)
// =============================================================================

// InsertEvent records a real punch.
func (s *Store) InsertEvent(ctx context.Context, ev attendance.PunchEvent) (attendance.PunchEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.Timestamp = ev.Timestamp.UTC().Truncate(time.Second)
	ev.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO punch_events (id, employee_id, timestamp, direction, synthetic, reason, created_at)
		VALUES (?, ?, ?, ?, FALSE, NULL, ?)
	`,
		ev.ID, ev.EmployeeID,
		ev.Timestamp.Format(time.RFC3339),
		ev.Direction,
		ev.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return attendance.PunchEvent{}, fmt.Errorf("failed to insert punch event: %w", err)
	}
	return ev, nil
}

// GetEvent returns a punch by id, nil when unknown.
func (s *Store) GetEvent(ctx context.Context, id string) (*attendance.PunchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, timestamp, direction, synthetic, reason, created_at
		FROM punch_events WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	ev, err := scanEvent(rows)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListEmployeesWithEvents returns the distinct employees that have any
// punch event on the given day. The day-end sweep uses it to find days
// worth reconciling.
func (s *Store) ListEmployeesWithEvents(ctx context.Context, day attendance.Day) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT employee_id FROM punch_events
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY employee_id
	`, day.Start().UTC().Format(time.RFC3339), day.End().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query employees with events: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteEvent removes a punch by id and returns the removed event so the
// caller knows which day to re-reconcile. Returns nil when the id is
// unknown.
func (s *Store) DeleteEvent(ctx context.Context, id string) (*attendance.PunchEvent, error) {
	ev, err := s.GetEvent(ctx, id)
	if err != nil || ev == nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM punch_events WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete punch event: %w", err)
	}
	return ev, nil
}

// =============================================================================
// SCHEDULE SOURCE (schedule.Source interface)
// =============================================================================

// GetScheduleConfig returns the tenant's shift configuration, falling back
// to the system default when the tenant has no explicit row.
func (s *Store) GetScheduleConfig(ctx context.Context, tenantID string) (schedule.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		shiftStart, breakStart, breakEnd, shiftEnd string
		cfg                                        schedule.Config
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT shift_start, break_start, break_end, shift_end, max_shift_hours,
		       auto_close_missing_out, auto_deduct_break, enable_auto_correction
		FROM tenant_schedules WHERE tenant_id = ?
	`, tenantID).Scan(&shiftStart, &breakStart, &breakEnd, &shiftEnd,
		&cfg.MaxShiftHours, &cfg.AutoCloseMissingOut, &cfg.AutoDeductBreak, &cfg.EnableAutoCorrection)

	if err == sql.ErrNoRows {
		return schedule.Default(), nil
	}
	if err != nil {
		return schedule.Config{}, fmt.Errorf("failed to query tenant schedule: %w", err)
	}

	for _, field := range []struct {
		raw string
		dst *schedule.TimeOfDay
	}{
		{shiftStart, &cfg.ShiftStart},
		{breakStart, &cfg.BreakStart},
		{breakEnd, &cfg.BreakEnd},
		{shiftEnd, &cfg.ShiftEnd},
	} {
		tod, err := schedule.ParseTimeOfDay(field.raw)
		if err != nil {
			return schedule.Config{}, fmt.Errorf("corrupt schedule for tenant %s: %w", tenantID, err)
		}
		*field.dst = tod
	}
	return cfg, nil
}

// UpsertScheduleConfig saves a tenant's shift configuration.
func (s *Store) UpsertScheduleConfig(ctx context.Context, tenantID string, cfg schedule.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO tenant_schedules
		(tenant_id, shift_start, break_start, break_end, shift_end, max_shift_hours,
		 auto_close_missing_out, auto_deduct_break, enable_auto_correction, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tenant_id) DO UPDATE SET
			shift_start = excluded.shift_start,
			break_start = excluded.break_start,
			break_end = excluded.break_end,
			shift_end = excluded.shift_end,
			max_shift_hours = excluded.max_shift_hours,
			auto_close_missing_out = excluded.auto_close_missing_out,
			auto_deduct_break = excluded.auto_deduct_break,
			enable_auto_correction = excluded.enable_auto_correction,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		tenantID,
		cfg.ShiftStart.String(), cfg.BreakStart.String(), cfg.BreakEnd.String(), cfg.ShiftEnd.String(),
		cfg.MaxShiftHours,
		cfg.AutoCloseMissingOut, cfg.AutoDeductBreak, cfg.EnableAutoCorrection,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert tenant schedule: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"punch_events", "attendance_summaries", "tenant_schedules"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
