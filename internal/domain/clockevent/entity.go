package clockevent

import "time"

type EventType string

const (
	TypeClockIn  EventType = "clock_in"
	TypeClockOut EventType = "clock_out"
)

type EventStatus string

const (
	StatusValid        EventStatus = "valid"
	StatusGPSWarning   EventStatus = "gps_warning"
	StatusGPSViolation EventStatus = "gps_violation"
)

// ClockEvent is one clock-in or clock-out action. Immutable once written,
// except PairID which is set when the counterpart event is created.
type ClockEvent struct {
	ID            string
	StaffID       string
	AppointmentID *string
	Type          EventType
	Status        EventStatus
	Timestamp     time.Time

	// Observed device location.
	Latitude       float64
	Longitude      float64
	AccuracyMeters *float64

	// Expected location, copied at evaluation time. Nil when no expected
	// location was available (evaluation skipped).
	ExpectedLatitude  *float64
	ExpectedLongitude *float64
	DistanceMeters    *float64
	RadiusMeters      float64

	// PairID links a clock-out to its clock-in and vice versa. Pairing is
	// complete only once both sides are set.
	PairID *string

	DeviceType *string
	Notes      *string

	// ExpectedClockOutTime is copied from the appointment's end time at
	// clock-in. Used for stale-shift detection.
	ExpectedClockOutTime *time.Time

	CreatedAt time.Time
}

// ComplianceLogEntry is the append-only audit record written whenever an
// expected location existed for a clock event. Review metadata is filled in
// later by the external review workflow.
type ComplianceLogEntry struct {
	ID            string
	EventType     EventType
	StaffID       string
	AppointmentID *string
	ClockEventID  string

	Latitude          float64
	Longitude         float64
	ExpectedLatitude  float64
	ExpectedLongitude float64
	DistanceMeters    float64

	Compliant      bool
	RequiresReview bool

	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNotes *string

	CreatedAt time.Time
}
