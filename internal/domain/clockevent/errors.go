package clockevent

import "errors"

// Clock event domain errors. Expected business outcomes of the clock
// operations themselves are reported through ClockActionResult codes, not
// through these; sentinels cover lookups and infrastructure-adjacent failures.
var (
	ErrClockEventNotFound    = errors.New("clock event not found")
	ErrComplianceLogNotFound = errors.New("compliance log entry not found")
)

// FailureCode identifies a blocking validation outcome of a clock operation.
// The set is closed: callers can exhaustively switch on it.
type FailureCode string

const (
	CodeStaffNotFound    FailureCode = "STAFF_NOT_FOUND"
	CodeOverlappingShift FailureCode = "OVERLAPPING_SHIFT"
	CodeGPSViolation     FailureCode = "GPS_VIOLATION"
	CodeNoActiveClockIn  FailureCode = "NO_ACTIVE_CLOCK_IN"
)

// WarningCode identifies a non-blocking advisory outcome.
type WarningCode string

const (
	CodeGPSWarning          WarningCode = "GPS_WARNING"
	CodeImplausibleDuration WarningCode = "IMPLAUSIBLE_DURATION"
)
