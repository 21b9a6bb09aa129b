package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)
