package geo

import "math"

// CalculateHaversineDistance returns the great-circle distance between two
// coordinate pairs, in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// ComplianceStatus classifies an observed location against an expected one.
type ComplianceStatus string

const (
	StatusValid     ComplianceStatus = "valid"
	StatusWarning   ComplianceStatus = "gps_warning"
	StatusViolation ComplianceStatus = "gps_violation"
)

// warningBandFraction: distances above this fraction of the radius (but still
// inside it) are flagged as a warning rather than rejected.
const warningBandFraction = 0.8

// Evaluation is the outcome of comparing an observed location with the
// expected service location.
type Evaluation struct {
	Evaluated      bool
	DistanceMeters float64
	RadiusMeters   float64
	Status         ComplianceStatus
}

// Compliant reports whether the observed location sits inside the radius.
// A skipped evaluation (no expected location) counts as compliant.
func (e Evaluation) Compliant() bool {
	return e.Status != StatusViolation
}

// Evaluate compares an observed coordinate pair against an expected one.
// Passing nil expected coordinates skips evaluation entirely: the event is
// treated as valid and no audit entry should be written.
func Evaluate(obsLat, obsLon float64, expLat, expLon *float64, radiusMeters float64) Evaluation {
	if expLat == nil || expLon == nil {
		return Evaluation{Evaluated: false, Status: StatusValid}
	}

	distance := CalculateHaversineDistance(obsLat, obsLon, *expLat, *expLon)

	status := StatusValid
	switch {
	case distance > radiusMeters:
		status = StatusViolation
	case distance > radiusMeters*warningBandFraction:
		status = StatusWarning
	}

	return Evaluation{
		Evaluated:      true,
		DistanceMeters: distance,
		RadiusMeters:   radiusMeters,
		Status:         status,
	}
}
