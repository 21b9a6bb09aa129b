package timesheet

import (
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	StaffID     string `json:"staff_id"`
	PeriodStart string `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end"`   // YYYY-MM-DD, exclusive
	AutoApprove bool   `json:"auto_approve"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be after period_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RejectRequest carries the rejection body; the reason requirement is
// enforced by the service with ErrRejectionReasonRequired.
type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

type EntryResponse struct {
	ID                 string  `json:"id"`
	AppointmentID      *string `json:"appointment_id,omitempty"`
	ClientID           *string `json:"client_id,omitempty"`
	ServiceType        string  `json:"service_type"`
	Date               string  `json:"date"`
	ClockInTime        string  `json:"clock_in_time"`
	ClockOutTime       string  `json:"clock_out_time"`
	WeekdayHours       string  `json:"weekday_hours"`
	SaturdayHours      string  `json:"saturday_hours"`
	SundayHours        string  `json:"sunday_hours"`
	PublicHolidayHours string  `json:"public_holiday_hours"`
	EveningHours       string  `json:"evening_hours"`
	NightHours         string  `json:"night_hours"`
	TotalHours         string  `json:"total_hours"`
	Notes              *string `json:"notes,omitempty"`
}

type TimesheetResponse struct {
	ID                 string          `json:"id"`
	StaffID            string          `json:"staff_id"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	Status             Status          `json:"status"`
	WeekdayHours       string          `json:"weekday_hours"`
	SaturdayHours      string          `json:"saturday_hours"`
	SundayHours        string          `json:"sunday_hours"`
	PublicHolidayHours string          `json:"public_holiday_hours"`
	EveningHours       string          `json:"evening_hours"`
	NightHours         string          `json:"night_hours"`
	TotalHours         string          `json:"total_hours"`
	ApprovedBy         *string         `json:"approved_by,omitempty"`
	ApprovedAt         *string         `json:"approved_at,omitempty"`
	RejectedBy         *string         `json:"rejected_by,omitempty"`
	RejectedAt         *string         `json:"rejected_at,omitempty"`
	RejectionReason    *string         `json:"rejection_reason,omitempty"`
	BudgetPostedAt     *string         `json:"budget_posted_at,omitempty"`
	Entries            []EntryResponse `json:"entries"`
}

type Filter struct {
	StaffID *string
	Status  *Status
}

// StaffFailure records one staff member whose generation failed during a
// weekly batch run.
type StaffFailure struct {
	StaffID string `json:"staff_id"`
	Error   string `json:"error"`
}

type WeeklyBatchResult struct {
	WeekStart string              `json:"week_start"`
	WeekEnd   string              `json:"week_end"`
	Generated []TimesheetResponse `json:"generated"`
	Failures  []StaffFailure      `json:"failures"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ToResponse maps a Timesheet entity (with loaded entries) to its DTO.
func ToResponse(ts Timesheet) TimesheetResponse {
	entries := make([]EntryResponse, 0, len(ts.Entries))
	for _, e := range ts.Entries {
		entries = append(entries, EntryResponse{
			ID:                 e.ID,
			AppointmentID:      e.AppointmentID,
			ClientID:           e.ClientID,
			ServiceType:        e.ServiceType,
			Date:               e.Date.Format("2006-01-02"),
			ClockInTime:        e.ClockInTime.Format(time.RFC3339),
			ClockOutTime:       e.ClockOutTime.Format(time.RFC3339),
			WeekdayHours:       e.Hours.Weekday.String(),
			SaturdayHours:      e.Hours.Saturday.String(),
			SundayHours:        e.Hours.Sunday.String(),
			PublicHolidayHours: e.Hours.PublicHoliday.String(),
			EveningHours:       e.Hours.Evening.String(),
			NightHours:         e.Hours.Night.String(),
			TotalHours:         e.TotalHours.String(),
			Notes:              e.Notes,
		})
	}

	return TimesheetResponse{
		ID:                 ts.ID,
		StaffID:            ts.StaffID,
		PeriodStart:        ts.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          ts.PeriodEnd.Format("2006-01-02"),
		Status:             ts.Status,
		WeekdayHours:       ts.Hours.Weekday.String(),
		SaturdayHours:      ts.Hours.Saturday.String(),
		SundayHours:        ts.Hours.Sunday.String(),
		PublicHolidayHours: ts.Hours.PublicHoliday.String(),
		EveningHours:       ts.Hours.Evening.String(),
		NightHours:         ts.Hours.Night.String(),
		TotalHours:         ts.TotalHours.String(),
		ApprovedBy:         ts.ApprovedBy,
		ApprovedAt:         formatTimePtr(ts.ApprovedAt),
		RejectedBy:         ts.RejectedBy,
		RejectedAt:         formatTimePtr(ts.RejectedAt),
		RejectionReason:    ts.RejectionReason,
		BudgetPostedAt:     formatTimePtr(ts.BudgetPostedAt),
		Entries:            entries,
	}
}
