package response

import (
	"errors"
	"net/http"

	"github.com/fieldserve/rostering-backend-go/internal/domain/appointment"
	"github.com/fieldserve/rostering-backend-go/internal/domain/budget"
	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
	"github.com/fieldserve/rostering-backend-go/internal/domain/staff"
	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Staff / appointment collaborators
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		NotFound(w, "Appointment not found")

	// Clock event domain errors
	case errors.Is(err, clockevent.ErrClockEventNotFound):
		NotFound(w, "Clock event not found")
	case errors.Is(err, clockevent.ErrComplianceLogNotFound):
		NotFound(w, "Compliance log entry not found")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrTimesheetAlreadyProcessed):
		Conflict(w, "Timesheet has already been approved or rejected")
	case errors.Is(err, timesheet.ErrRejectionReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, timesheet.ErrInvalidPeriod):
		BadRequest(w, "Period end must be after period start", nil)

	// Budget domain errors
	case errors.Is(err, budget.ErrLedgerNotFound):
		NotFound(w, "Budget ledger not found")
	case errors.Is(err, budget.ErrTimesheetNotApproved):
		BadRequest(w, "Timesheet is not approved", nil)
	case errors.Is(err, budget.ErrBudgetAlreadyPosted):
		Conflict(w, "Timesheet has already been posted to budgets")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
