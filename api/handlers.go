/*
handlers.go - HTTP API handlers for the attendance reconciliation service

PURPOSE:
  Exposes the reconciliation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Punches:
    POST   /api/employees/{id}/punches        Record a clock event
    GET    /api/employees/{id}/punches        List a day's events
    DELETE /api/punches/{id}                  Remove a punch

  Summaries:
    GET    /api/employees/{id}/summaries        Summaries in a date range
    GET    /api/employees/{id}/summaries/{date} Single summary
    POST   /api/employees/{id}/reconcile        Recompute a day
    POST   /api/employees/{id}/summaries/{date}/resolve  Clear review flag
    POST   /api/employees/{id}/summaries/{date}/lock     Freeze for payroll
    POST   /api/employees/{id}/summaries/{date}/unlock

  Schedules:
    GET    /api/tenants/{id}/schedule         Tenant shift configuration
    PUT    /api/tenants/{id}/schedule

RECONCILIATION CONTRACT:
  Recording or deleting a punch triggers reconciliation for the affected
  (employee, day). A reconciliation failure does NOT fail the punch write:
  the event is durable, the failure is logged, and the day heals on the
  next reconciliation. The explicit /reconcile endpoint DOES surface
  engine errors, so operators can retry a stuck day and see why.
  Punch mutations on a locked day are refused with 409 before any write.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Locked summary
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - attendance/engine.go: Reconciliation logic
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *attendance.Engine

	// TenantID scopes schedule lookups for single-tenant deployments.
	TenantID string

	// Track currently loaded demo scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and engine.
func NewHandler(store *sqlite.Store, engine *attendance.Engine, tenantID string) *Handler {
	return &Handler{
		Store:    store,
		Engine:   engine,
		TenantID: tenantID,
	}
}

// =============================================================================
// PUNCH HANDLERS
// =============================================================================

// RecordPunch records a clock event and reconciles the affected day.
// POST /api/employees/{id}/punches
func (h *Handler) RecordPunch(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid timestamp format (use RFC3339)", err)
		return
	}

	dir := attendance.Direction(req.Direction)
	if dir != attendance.DirectionIn && dir != attendance.DirectionOut {
		writeError(w, http.StatusBadRequest, "Direction must be 'in' or 'out'", nil)
		return
	}

	day := attendance.DayOf(ts)
	if h.rejectIfLocked(w, r, employeeID, day) {
		return
	}

	ev, err := h.Store.InsertEvent(r.Context(), attendance.PunchEvent{
		EmployeeID: employeeID,
		Timestamp:  ts,
		Direction:  dir,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record punch", err)
		return
	}

	// The punch is durable at this point. Reconciliation failure must not
	// undo it; the day heals on the next run.
	h.reconcileAfterWrite(r, employeeID, day)

	writeJSON(w, http.StatusCreated, toPunchDTO(ev))
}

// ListPunches returns an employee's events for one day.
// GET /api/employees/{id}/punches?date=YYYY-MM-DD&include_synthetic=true
func (h *Handler) ListPunches(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	day, err := attendance.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	includeSynthetic := r.URL.Query().Get("include_synthetic") != "false"

	events, err := h.Store.ListEvents(r.Context(), employeeID, day, includeSynthetic)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list punches", err)
		return
	}

	dtos := make([]PunchDTO, len(events))
	for i, ev := range events {
		dtos[i] = toPunchDTO(ev)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// DeletePunch removes a punch and reconciles the day it belonged to.
// DELETE /api/punches/{id}
func (h *Handler) DeletePunch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ev, err := h.Store.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get punch", err)
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "Punch not found", nil)
		return
	}
	if h.rejectIfLocked(w, r, ev.EmployeeID, attendance.DayOf(ev.Timestamp)) {
		return
	}

	ev, err = h.Store.DeleteEvent(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete punch", err)
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "Punch not found", nil)
		return
	}

	h.reconcileAfterWrite(r, ev.EmployeeID, attendance.DayOf(ev.Timestamp))

	writeJSON(w, http.StatusOK, toPunchDTO(*ev))
}

// rejectIfLocked refuses a punch mutation on a day frozen for payroll.
// Reports whether a response was already written.
func (h *Handler) rejectIfLocked(w http.ResponseWriter, r *http.Request, employeeID string, day attendance.Day) bool {
	summary, err := h.Store.GetSummary(r.Context(), employeeID, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get summary", err)
		return true
	}
	if summary != nil && summary.Locked {
		writeError(w, http.StatusConflict, "Day is locked for payroll", nil)
		return true
	}
	return false
}

// reconcileAfterWrite recomputes a day after a punch mutation. Failures
// are logged, never surfaced: the punch write already succeeded.
func (h *Handler) reconcileAfterWrite(r *http.Request, employeeID string, day attendance.Day) {
	if _, err := h.Engine.Reconcile(r.Context(), h.TenantID, employeeID, day); err != nil {
		log.Printf("⚠️  reconcile failed for %s on %s: %v", employeeID, day, err)
	}
}

// =============================================================================
// SUMMARY HANDLERS
// =============================================================================

// GetSummary returns a single daily summary.
// GET /api/employees/{id}/summaries/{date}
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	day, err := attendance.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	summary, err := h.Store.GetSummary(r.Context(), employeeID, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get summary", err)
		return
	}
	if summary == nil {
		writeError(w, http.StatusNotFound, "Summary not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(*summary))
}

// ListSummaries returns summaries in a date range.
// GET /api/employees/{id}/summaries?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	from, err := attendance.ParseDay(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}
	to, err := attendance.ParseDay(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
		return
	}

	summaries, err := h.Store.ListSummaries(r.Context(), employeeID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list summaries", err)
		return
	}

	dtos := make([]SummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = toSummaryDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Reconcile recomputes one (employee, day) on demand. Unlike the
// automatic reconciliation after punch writes, engine errors surface
// here so operators can see why a day is stuck.
// POST /api/employees/{id}/reconcile  body: {"date": "YYYY-MM-DD"}
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	day, err := attendance.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	result, err := h.Engine.Reconcile(r.Context(), h.TenantID, employeeID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrSummaryLocked) {
			writeError(w, http.StatusConflict, "Day is locked for payroll", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Reconciliation failed", err)
		return
	}

	resp := ReconcileResponse{Deleted: result.Deleted}
	if result.Summary != nil {
		dto := toSummaryDTO(*result.Summary)
		resp.Summary = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResolveSummary clears the review flag after a supervisor has checked
// the day. Hours are not recomputed.
// POST /api/employees/{id}/summaries/{date}/resolve
func (h *Handler) ResolveSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	day, err := attendance.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	summary, err := h.Engine.Resolve(r.Context(), employeeID, day)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrSummaryNotFound):
			writeError(w, http.StatusNotFound, "Summary not found", err)
		case errors.Is(err, attendance.ErrSummaryLocked):
			writeError(w, http.StatusConflict, "Day is locked for payroll", err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to resolve summary", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// LockSummary freezes a day before payroll export.
// POST /api/employees/{id}/summaries/{date}/lock
func (h *Handler) LockSummary(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, true)
}

// UnlockSummary reopens a locked day.
// POST /api/employees/{id}/summaries/{date}/unlock
func (h *Handler) UnlockSummary(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, false)
}

func (h *Handler) setLocked(w http.ResponseWriter, r *http.Request, locked bool) {
	employeeID := chi.URLParam(r, "id")

	day, err := attendance.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	summary, err := h.Store.GetSummary(r.Context(), employeeID, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get summary", err)
		return
	}
	if summary == nil {
		writeError(w, http.StatusNotFound, "Summary not found", nil)
		return
	}

	summary.Locked = locked
	updated, err := h.Store.UpsertSummary(r.Context(), *summary)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update summary", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(updated))
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetSchedule returns a tenant's shift configuration.
// GET /api/tenants/{id}/schedule
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "id")

	cfg, err := h.Store.GetScheduleConfig(r.Context(), tenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(cfg))
}

// PutSchedule replaces a tenant's shift configuration.
// PUT /api/tenants/{id}/schedule
func (h *Handler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "id")

	var dto ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := dto.toConfig()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule", err)
		return
	}

	if err := h.Store.UpsertScheduleConfig(r.Context(), tenantID, cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(cfg))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ResetDatabase clears all data (dev only).
// POST /api/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
