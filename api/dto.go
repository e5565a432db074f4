/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Punches:
    PunchDTO, RecordPunchRequest

  Summaries:
    SummaryDTO, ReconcileResponse

  Schedules:
    ScheduleDTO (doubles as the PUT request body)

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - attendance/types.go: Domain model these map from
*/
package api

import (
	"time"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/schedule"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PunchDTO represents a punch event in API responses.
type PunchDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Timestamp  string `json:"timestamp"`
	Direction  string `json:"direction"`
	Synthetic  bool   `json:"synthetic"`
	Reason     string `json:"reason,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// RecordPunchRequest is the request to record a clock event.
type RecordPunchRequest struct {
	Timestamp string `json:"timestamp"` // RFC3339
	Direction string `json:"direction"` // "in" or "out"
}

// SummaryDTO represents a daily attendance summary in API responses.
type SummaryDTO struct {
	EmployeeID    string `json:"employee_id"`
	Date          string `json:"date"`
	HoursWorked   string `json:"hours_worked"`
	Status        string `json:"status"`
	IsIncomplete  bool   `json:"is_incomplete"`
	NeedsReview   bool   `json:"needs_review"`
	AutoCorrected bool   `json:"is_auto_corrected"`
	Locked        bool   `json:"locked"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// ReconcileResponse reports the outcome of a reconciliation run.
type ReconcileResponse struct {
	Summary *SummaryDTO `json:"summary,omitempty"`
	Deleted bool        `json:"deleted"`
}

// ScheduleDTO represents a tenant's shift configuration. The same shape
// is accepted as the PUT request body.
type ScheduleDTO struct {
	ShiftStart           string `json:"shift_start"`
	BreakStart           string `json:"break_start"`
	BreakEnd             string `json:"break_end"`
	ShiftEnd             string `json:"shift_end"`
	MaxShiftHours        int    `json:"max_shift_hours"`
	AutoCloseMissingOut  bool   `json:"auto_close_missing_out"`
	AutoDeductBreak      bool   `json:"auto_deduct_break"`
	EnableAutoCorrection bool   `json:"enable_auto_correction"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toPunchDTO(ev attendance.PunchEvent) PunchDTO {
	dto := PunchDTO{
		ID:         ev.ID,
		EmployeeID: ev.EmployeeID,
		Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
		Direction:  string(ev.Direction),
		Synthetic:  ev.Synthetic,
		Reason:     ev.Reason,
	}
	if !ev.CreatedAt.IsZero() {
		dto.CreatedAt = ev.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func toSummaryDTO(s attendance.AttendanceSummary) SummaryDTO {
	dto := SummaryDTO{
		EmployeeID:    s.EmployeeID,
		Date:          s.Date.String(),
		HoursWorked:   s.HoursWorked.StringFixed(2),
		Status:        string(s.Status),
		IsIncomplete:  s.Incomplete,
		NeedsReview:   s.NeedsReview,
		AutoCorrected: s.AutoCorrected,
		Locked:        s.Locked,
	}
	if !s.UpdatedAt.IsZero() {
		dto.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func toScheduleDTO(cfg schedule.Config) ScheduleDTO {
	return ScheduleDTO{
		ShiftStart:           cfg.ShiftStart.String(),
		BreakStart:           cfg.BreakStart.String(),
		BreakEnd:             cfg.BreakEnd.String(),
		ShiftEnd:             cfg.ShiftEnd.String(),
		MaxShiftHours:        cfg.MaxShiftHours,
		AutoCloseMissingOut:  cfg.AutoCloseMissingOut,
		AutoDeductBreak:      cfg.AutoDeductBreak,
		EnableAutoCorrection: cfg.EnableAutoCorrection,
	}
}

func (d ScheduleDTO) toConfig() (schedule.Config, error) {
	cfg := schedule.Config{
		MaxShiftHours:        d.MaxShiftHours,
		AutoCloseMissingOut:  d.AutoCloseMissingOut,
		AutoDeductBreak:      d.AutoDeductBreak,
		EnableAutoCorrection: d.EnableAutoCorrection,
	}
	for _, field := range []struct {
		raw string
		dst *schedule.TimeOfDay
	}{
		{d.ShiftStart, &cfg.ShiftStart},
		{d.BreakStart, &cfg.BreakStart},
		{d.BreakEnd, &cfg.BreakEnd},
		{d.ShiftEnd, &cfg.ShiftEnd},
	} {
		tod, err := schedule.ParseTimeOfDay(field.raw)
		if err != nil {
			return schedule.Config{}, err
		}
		*field.dst = tod
	}
	if err := cfg.Validate(); err != nil {
		return schedule.Config{}, err
	}
	return cfg, nil
}
