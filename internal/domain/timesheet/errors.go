package timesheet

import "errors"

var (
	ErrTimesheetNotFound         = errors.New("timesheet not found")
	ErrTimesheetAlreadyProcessed = errors.New("timesheet has already been approved or rejected")
	ErrRejectionReasonRequired   = errors.New("rejection reason is required")
	ErrInvalidPeriod             = errors.New("period end must be after period start")
)
