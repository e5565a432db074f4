/*
scheduler.go - Day-end reconciliation sweep

PURPOSE:
  Punch streams go quiet when an employee forgets to badge out: no event
  arrives to trigger reconciliation, so the open IN would dangle forever.
  The sweep periodically reconciles the previous day for every employee
  who punched that day, letting the auto-close rule finish those days.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each pass reconciles yesterday for all employees with punches
  - Reconciliation is idempotent, so re-sweeping a settled day is a no-op
  - Locked days are skipped (the engine refuses them; not an error here)

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - Enabled: Whether the sweep is active (default: true)

USAGE:
  sweep := NewDayEndSweep(store, engine, tenantID)
  sweep.Start()
  // ... later
  sweep.Stop()

SEE ALSO:
  - attendance/engine.go: Reconcile and the auto-close rule
  - handlers.go: the manual /reconcile endpoint
*/
package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/store/sqlite"
)

// DayEndSweep periodically reconciles the previous day so open INs are
// auto-closed even when no further punch ever arrives.
type DayEndSweep struct {
	Store         *sqlite.Store
	Engine        *attendance.Engine
	TenantID      string
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDayEndSweep creates a new sweep.
func NewDayEndSweep(store *sqlite.Store, engine *attendance.Engine, tenantID string) *DayEndSweep {
	return &DayEndSweep{
		Store:         store,
		Engine:        engine,
		TenantID:      tenantID,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the sweep.
func (ds *DayEndSweep) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled {
		log.Println("[Sweep] Disabled, not starting")
		return
	}

	ds.ticker = time.NewTicker(ds.CheckInterval)
	ds.wg.Add(1)

	go ds.run()

	log.Printf("[Sweep] Started with check interval: %v", ds.CheckInterval)
}

// Stop halts the sweep and waits for the current pass to finish.
func (ds *DayEndSweep) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker == nil {
		return
	}

	ds.ticker.Stop()
	close(ds.stop)
	ds.wg.Wait()
	ds.ticker = nil

	log.Println("[Sweep] Stopped")
}

func (ds *DayEndSweep) run() {
	defer ds.wg.Done()

	// Sweep once at startup to catch days left open across a restart.
	ds.SweepDay(context.Background(), attendance.DayOf(time.Now().UTC()).AddDays(-1))

	for {
		select {
		case <-ds.ticker.C:
			ds.SweepDay(context.Background(), attendance.DayOf(time.Now().UTC()).AddDays(-1))
		case <-ds.stop:
			return
		}
	}
}

// SweepDay reconciles the given day for every employee who punched it.
// Returns the number of employees reconciled.
func (ds *DayEndSweep) SweepDay(ctx context.Context, day attendance.Day) int {
	employees, err := ds.Store.ListEmployeesWithEvents(ctx, day)
	if err != nil {
		log.Printf("[Sweep] Failed to list employees for %s: %v", day, err)
		return 0
	}

	reconciled := 0
	for _, employeeID := range employees {
		_, err := ds.Engine.Reconcile(ctx, ds.TenantID, employeeID, day)
		switch {
		case err == nil:
			reconciled++
		case errors.Is(err, attendance.ErrSummaryLocked):
			// Payroll already froze the day.
		default:
			log.Printf("[Sweep] Reconcile failed for %s on %s: %v", employeeID, day, err)
		}
	}

	if reconciled > 0 {
		log.Printf("[Sweep] Reconciled %d employee day(s) for %s", reconciled, day)
	}
	return reconciled
}
