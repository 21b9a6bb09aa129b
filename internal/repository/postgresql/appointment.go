package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldserve/rostering-backend-go/internal/domain/appointment"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type appointmentRepository struct {
	db *database.DB
}

// GetByID implements appointment.AppointmentRepository. The client's recorded
// location and radius override ride along via the join.
func (r *appointmentRepository) GetByID(ctx context.Context, id string) (appointment.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.id, a.staff_id, a.client_id, a.service_type, a.start_time, a.end_time,
			c.latitude, c.longitude, c.gps_radius_meters
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.id = $1
	`

	var appt appointment.Appointment
	err := q.QueryRow(ctx, query, id).Scan(
		&appt.ID, &appt.StaffID, &appt.ClientID, &appt.ServiceType, &appt.StartTime, &appt.EndTime,
		&appt.ClientLatitude, &appt.ClientLongitude, &appt.RadiusMeters,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return appointment.Appointment{}, appointment.ErrAppointmentNotFound
		}
		return appointment.Appointment{}, fmt.Errorf("failed to get appointment by ID: %w", err)
	}

	return appt, nil
}

func NewAppointmentRepository(db *database.DB) appointment.AppointmentRepository {
	return &appointmentRepository{db: db}
}
