package clockevent

import (
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/pkg/validator"
)

// ClockRequest is the shared request shape for clock-in and clock-out.
type ClockRequest struct {
	StaffID       string   `json:"staff_id"`
	AppointmentID *string  `json:"appointment_id,omitempty"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Accuracy      *float64 `json:"accuracy,omitempty"`
	DeviceType    *string  `json:"device_type,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Accuracy != nil && *r.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ActionError is a blocking validation outcome surfaced to the caller.
type ActionError struct {
	Code    FailureCode `json:"code"`
	Message string      `json:"message"`
}

// ActionWarning is a non-blocking advisory outcome surfaced to the caller.
type ActionWarning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// OpenShift summarizes a clock-in that has no matching clock-out yet.
type OpenShift struct {
	RecordID             string     `json:"record_id"`
	AppointmentID        *string    `json:"appointment_id,omitempty"`
	ClockInTime          time.Time  `json:"clock_in_time"`
	ExpectedClockOutTime *time.Time `json:"expected_clock_out_time,omitempty"`
}

// ClockActionResult is the structured outcome of a clock-in or clock-out.
// Expected business failures land in Errors; Go errors are reserved for
// infrastructure faults.
type ClockActionResult struct {
	Success           bool            `json:"success"`
	RecordID          *string         `json:"record_id,omitempty"`
	Errors            []ActionError   `json:"errors"`
	Warnings          []ActionWarning `json:"warnings"`
	GPSCompliant      *bool           `json:"gps_compliant,omitempty"`
	DistanceMeters    *float64        `json:"distance,omitempty"`
	OverlappingEvents []OpenShift     `json:"overlapping_events,omitempty"`
}

// ActiveClockInResponse answers the status query for a staff member.
type ActiveClockInResponse struct {
	IsClockedIn  bool        `json:"is_clocked_in"`
	ActiveEvents []OpenShift `json:"active_events"`
}
