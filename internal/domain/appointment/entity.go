package appointment

import "time"

// Appointment is a scheduled service visit. The record itself is owned by the
// external scheduling screens; this core only reads it to resolve expected
// coordinates, service type and the expected end-of-shift time.
type Appointment struct {
	ID          string
	StaffID     string
	ClientID    string
	ServiceType string
	StartTime   time.Time
	EndTime     time.Time

	// Expected service location, copied from the client record. Nil when the
	// client has no recorded location.
	ClientLatitude  *float64
	ClientLongitude *float64

	// Per-client override of the default compliance radius.
	RadiusMeters *float64
}
