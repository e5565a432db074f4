// Package store provides attendance store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	events    map[dayKey][]attendance.PunchEvent
	summaries map[dayKey]attendance.AttendanceSummary
	seq       int64
}

type dayKey struct {
	EmployeeID string
	Date       string
}

func keyFor(employeeID string, day attendance.Day) dayKey {
	return dayKey{EmployeeID: employeeID, Date: day.String()}
}

func NewMemory() *Memory {
	return &Memory{
		events:    make(map[dayKey][]attendance.PunchEvent),
		summaries: make(map[dayKey]attendance.AttendanceSummary),
	}
}

// =============================================================================
// LOG STORE
// =============================================================================

func (m *Memory) ListEvents(_ context.Context, employeeID string, day attendance.Day, includeSynthetic bool) ([]attendance.PunchEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(employeeID, day, includeSynthetic), nil
}

func (m *Memory) listLocked(employeeID string, day attendance.Day, includeSynthetic bool) []attendance.PunchEvent {
	var result []attendance.PunchEvent
	for _, ev := range m.events[keyFor(employeeID, day)] {
		if !includeSynthetic && ev.Synthetic {
			continue
		}
		result = append(result, ev)
	}
	return result
}

func (m *Memory) InsertSyntheticEvent(_ context.Context, employeeID string, at time.Time, dir attendance.Direction, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := keyFor(employeeID, attendance.DayOf(at))
	// Identical synthetic already present: no-op, keeps regeneration idempotent.
	for _, ev := range m.events[k] {
		if ev.Synthetic && ev.Timestamp.Equal(at) && ev.Direction == dir {
			return nil
		}
	}

	m.insertLocked(attendance.PunchEvent{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Timestamp:  at,
		Direction:  dir,
		Synthetic:  true,
		Reason:     reason,
	})
	return nil
}

func (m *Memory) DeleteSyntheticEvents(_ context.Context, employeeID string, day attendance.Day) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := keyFor(employeeID, day)
	kept := m.events[k][:0]
	for _, ev := range m.events[k] {
		if !ev.Synthetic {
			kept = append(kept, ev)
		}
	}
	m.events[k] = kept
	return nil
}

// InsertEvent records a real punch. Used by the surrounding CRUD layer and
// by tests to seed days; the engine itself never creates real events.
func (m *Memory) InsertEvent(_ context.Context, ev attendance.PunchEvent) (attendance.PunchEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	m.insertLocked(ev)
	return ev, nil
}

// DeleteEvent removes a punch by id, returning the removed event so the
// caller knows which day to re-reconcile. Returns nil when the id is
// unknown.
func (m *Memory) DeleteEvent(_ context.Context, id string) (*attendance.PunchEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, evs := range m.events {
		for i, ev := range evs {
			if ev.ID == id {
				m.events[k] = append(evs[:i:i], evs[i+1:]...)
				return &ev, nil
			}
		}
	}
	return nil, nil
}

// insertLocked keeps each day's slice ordered by timestamp, insertion
// order breaking ties (the stable ordering the engine relies on).
func (m *Memory) insertLocked(ev attendance.PunchEvent) {
	m.seq++
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Unix(m.seq, 0)
	}

	k := keyFor(ev.EmployeeID, attendance.DayOf(ev.Timestamp))
	evs := append(m.events[k], ev)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].Timestamp.Before(evs[j].Timestamp) })
	m.events[k] = evs
}

// =============================================================================
// SUMMARY STORE
// =============================================================================

func (m *Memory) GetSummary(_ context.Context, employeeID string, day attendance.Day) (*attendance.AttendanceSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.summaries[keyFor(employeeID, day)]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *Memory) UpsertSummary(_ context.Context, summary attendance.AttendanceSummary) (attendance.AttendanceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summary.UpdatedAt = time.Now().UTC()
	m.summaries[keyFor(summary.EmployeeID, summary.Date)] = summary
	return summary, nil
}

func (m *Memory) DeleteSummary(_ context.Context, employeeID string, day attendance.Day) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.summaries, keyFor(employeeID, day))
	return nil
}

// ListSummaries returns an employee's summaries in [from, to], date order.
func (m *Memory) ListSummaries(_ context.Context, employeeID string, from, to attendance.Day) ([]attendance.AttendanceSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []attendance.AttendanceSummary
	for _, s := range m.summaries {
		if s.EmployeeID != employeeID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// =============================================================================
// TRANSACTIONAL MEMORY STORE
// =============================================================================

// TxMemory wraps Memory with transaction support, simulated with a
// snapshot + rollback on error.
type TxMemory struct {
	*Memory
}

func NewTxMemory() *TxMemory {
	return &TxMemory{Memory: NewMemory()}
}

func (tm *TxMemory) WithTx(ctx context.Context, fn func(attendance.Store) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	snapshot := tm.snapshot()

	if err := fn(&txMemoryView{parent: tm.Memory}); err != nil {
		tm.restore(snapshot)
		return err
	}
	return nil
}

func (tm *TxMemory) snapshot() memorySnapshot {
	evCopy := make(map[dayKey][]attendance.PunchEvent, len(tm.events))
	for k, v := range tm.events {
		evCopy[k] = append([]attendance.PunchEvent{}, v...)
	}
	sumCopy := make(map[dayKey]attendance.AttendanceSummary, len(tm.summaries))
	for k, v := range tm.summaries {
		sumCopy[k] = v
	}
	return memorySnapshot{events: evCopy, summaries: sumCopy}
}

func (tm *TxMemory) restore(s memorySnapshot) {
	tm.events = s.events
	tm.summaries = s.summaries
}

type memorySnapshot struct {
	events    map[dayKey][]attendance.PunchEvent
	summaries map[dayKey]attendance.AttendanceSummary
}

// txMemoryView reuses the parent's locked helpers; the outer WithTx holds
// the mutex for the whole transaction.
type txMemoryView struct {
	parent *Memory
}

func (tv *txMemoryView) ListEvents(_ context.Context, employeeID string, day attendance.Day, includeSynthetic bool) ([]attendance.PunchEvent, error) {
	return tv.parent.listLocked(employeeID, day, includeSynthetic), nil
}

func (tv *txMemoryView) InsertSyntheticEvent(_ context.Context, employeeID string, at time.Time, dir attendance.Direction, reason string) error {
	k := keyFor(employeeID, attendance.DayOf(at))
	for _, ev := range tv.parent.events[k] {
		if ev.Synthetic && ev.Timestamp.Equal(at) && ev.Direction == dir {
			return nil
		}
	}
	tv.parent.insertLocked(attendance.PunchEvent{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Timestamp:  at,
		Direction:  dir,
		Synthetic:  true,
		Reason:     reason,
	})
	return nil
}

func (tv *txMemoryView) DeleteSyntheticEvents(_ context.Context, employeeID string, day attendance.Day) error {
	k := keyFor(employeeID, day)
	kept := tv.parent.events[k][:0]
	for _, ev := range tv.parent.events[k] {
		if !ev.Synthetic {
			kept = append(kept, ev)
		}
	}
	tv.parent.events[k] = kept
	return nil
}

func (tv *txMemoryView) GetSummary(_ context.Context, employeeID string, day attendance.Day) (*attendance.AttendanceSummary, error) {
	if s, ok := tv.parent.summaries[keyFor(employeeID, day)]; ok {
		return &s, nil
	}
	return nil, nil
}

func (tv *txMemoryView) UpsertSummary(_ context.Context, summary attendance.AttendanceSummary) (attendance.AttendanceSummary, error) {
	summary.UpdatedAt = time.Now().UTC()
	tv.parent.summaries[keyFor(summary.EmployeeID, summary.Date)] = summary
	return summary, nil
}

func (tv *txMemoryView) DeleteSummary(_ context.Context, employeeID string, day attendance.Day) error {
	delete(tv.parent.summaries, keyFor(employeeID, day))
	return nil
}
