package appointment

import "context"

type AppointmentRepository interface {
	// GetByID retrieves an appointment together with its client's recorded
	// location, returning ErrAppointmentNotFound when absent.
	GetByID(ctx context.Context, id string) (Appointment, error)
}
