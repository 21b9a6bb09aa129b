package memory

import (
	"context"
	"sync"

	"github.com/fieldserve/rostering-backend-go/internal/domain/appointment"
)

type AppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]appointment.Appointment
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{appointments: make(map[string]appointment.Appointment)}
}

// Put seeds an appointment record.
func (r *AppointmentRepository) Put(a appointment.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = a
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (appointment.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appointments[id]
	if !ok {
		return appointment.Appointment{}, appointment.ErrAppointmentNotFound
	}
	return a, nil
}
