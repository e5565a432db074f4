/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	punch data for testing and demos. Each scenario creates employees,
	records punches, and reconciles the affected days so every correction
	rule can be seen working.

AVAILABLE SCENARIOS:

	clean-week:      One employee, five complete days, nothing to correct
	missing-punches: Forgotten OUTs and an orphan OUT across a week
	review-queue:    Several employees with days waiting on a supervisor

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Record punch events
 3. Reconcile each touched (employee, day)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "missing-punches"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - attendance/intervals.go: The rules the scenarios demonstrate
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "clean-week",
		Name:        "Clean Week",
		Description: "One employee, five complete days. No corrections needed.",
	},
	{
		ID:          "missing-punches",
		Name:        "Missing Punches",
		Description: "Forgotten OUTs and an orphan OUT; shows synthetic corrections.",
	},
	{
		ID:          "review-queue",
		Name:        "Review Queue",
		Description: "Several employees with flagged days awaiting a supervisor.",
	},
}

// demoWeek is the Monday anchoring all scenario data.
var demoWeek = attendance.NewDay(2025, time.March, 10)

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario reports which scenario was last loaded.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": h.currentScenario})
}

// LoadScenario resets the database and loads the requested scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "clean-week":
		err = h.loadCleanWeek(ctx)
	case "missing-punches":
		err = h.loadMissingPunches(ctx)
	case "review-queue":
		err = h.loadReviewQueue(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario_id": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// demoPunch records one real punch at clock time hh:mm on demoWeek+dayOffset.
func (h *Handler) demoPunch(ctx context.Context, employeeID string, dayOffset, hour, minute int, dir attendance.Direction) error {
	base := demoWeek.AddDays(dayOffset).Start()
	_, err := h.Store.InsertEvent(ctx, attendance.PunchEvent{
		EmployeeID: employeeID,
		Timestamp:  base.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
		Direction:  dir,
	})
	return err
}

func (h *Handler) demoReconcile(ctx context.Context, employeeID string, dayOffsets ...int) error {
	for _, offset := range dayOffsets {
		if _, err := h.Engine.Reconcile(ctx, h.TenantID, employeeID, demoWeek.AddDays(offset)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadCleanWeek(ctx context.Context) error {
	for day := 0; day < 5; day++ {
		for _, p := range []struct {
			hour, minute int
			dir          attendance.Direction
		}{
			{8, 0, attendance.DirectionIn},
			{12, 0, attendance.DirectionOut},
			{13, 0, attendance.DirectionIn},
			{17, 0, attendance.DirectionOut},
		} {
			if err := h.demoPunch(ctx, "alice", day, p.hour, p.minute, p.dir); err != nil {
				return err
			}
		}
	}
	return h.demoReconcile(ctx, "alice", 0, 1, 2, 3, 4)
}

func (h *Handler) loadMissingPunches(ctx context.Context) error {
	// Monday: forgot both OUTs, two INs in a row.
	if err := h.demoPunch(ctx, "bob", 0, 8, 5, attendance.DirectionIn); err != nil {
		return err
	}
	if err := h.demoPunch(ctx, "bob", 0, 13, 2, attendance.DirectionIn); err != nil {
		return err
	}

	// Tuesday: never badged out at all.
	if err := h.demoPunch(ctx, "bob", 1, 7, 58, attendance.DirectionIn); err != nil {
		return err
	}

	// Wednesday: badge misread on the way in, only the OUT registered.
	if err := h.demoPunch(ctx, "bob", 2, 17, 4, attendance.DirectionOut); err != nil {
		return err
	}

	return h.demoReconcile(ctx, "bob", 0, 1, 2)
}

func (h *Handler) loadReviewQueue(ctx context.Context) error {
	// carol: afternoon only, morning segment missing.
	if err := h.demoPunch(ctx, "carol", 0, 13, 0, attendance.DirectionIn); err != nil {
		return err
	}
	if err := h.demoPunch(ctx, "carol", 0, 17, 0, attendance.DirectionOut); err != nil {
		return err
	}

	// dave: orphan OUT at midday.
	if err := h.demoPunch(ctx, "dave", 0, 12, 30, attendance.DirectionOut); err != nil {
		return err
	}

	// erin: clean day for contrast.
	if err := h.demoPunch(ctx, "erin", 0, 8, 0, attendance.DirectionIn); err != nil {
		return err
	}
	if err := h.demoPunch(ctx, "erin", 0, 17, 0, attendance.DirectionOut); err != nil {
		return err
	}

	for _, employee := range []string{"carol", "dave", "erin"} {
		if err := h.demoReconcile(ctx, employee, 0); err != nil {
			return err
		}
	}
	return nil
}
