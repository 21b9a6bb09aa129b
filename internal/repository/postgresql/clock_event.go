package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const clockEventColumns = `
	id, staff_id, appointment_id, event_type, event_status, event_timestamp,
	latitude, longitude, accuracy_meters,
	expected_latitude, expected_longitude, distance_meters, radius_meters,
	pair_id, device_type, notes, expected_clock_out_time, created_at
`

type clockEventRepository struct {
	db *database.DB
}

func scanClockEvent(row pgx.Row) (clockevent.ClockEvent, error) {
	var e clockevent.ClockEvent
	err := row.Scan(
		&e.ID, &e.StaffID, &e.AppointmentID, &e.Type, &e.Status, &e.Timestamp,
		&e.Latitude, &e.Longitude, &e.AccuracyMeters,
		&e.ExpectedLatitude, &e.ExpectedLongitude, &e.DistanceMeters, &e.RadiusMeters,
		&e.PairID, &e.DeviceType, &e.Notes, &e.ExpectedClockOutTime, &e.CreatedAt,
	)
	return e, err
}

// Create implements clockevent.ClockEventRepository.
func (r *clockEventRepository) Create(ctx context.Context, event clockevent.ClockEvent) (clockevent.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_events (
			id, staff_id, appointment_id, event_type, event_status, event_timestamp,
			latitude, longitude, accuracy_meters,
			expected_latitude, expected_longitude, distance_meters, radius_meters,
			pair_id, device_type, notes, expected_clock_out_time
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.StaffID,
		event.AppointmentID,
		event.Type,
		event.Status,
		event.Timestamp,
		event.Latitude,
		event.Longitude,
		event.AccuracyMeters,
		event.ExpectedLatitude,
		event.ExpectedLongitude,
		event.DistanceMeters,
		event.RadiusMeters,
		event.PairID,
		event.DeviceType,
		event.Notes,
		event.ExpectedClockOutTime,
	).Scan(&event.CreatedAt)

	if err != nil {
		return clockevent.ClockEvent{}, fmt.Errorf("failed to create clock event: %w", err)
	}

	return event, nil
}

// GetByID implements clockevent.ClockEventRepository.
func (r *clockEventRepository) GetByID(ctx context.Context, id string) (clockevent.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clockEventColumns + ` FROM clock_events WHERE id = $1`

	event, err := scanClockEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return clockevent.ClockEvent{}, clockevent.ErrClockEventNotFound
		}
		return clockevent.ClockEvent{}, fmt.Errorf("failed to get clock event by ID: %w", err)
	}

	return event, nil
}

// SetPairID implements clockevent.ClockEventRepository.
func (r *clockEventRepository) SetPairID(ctx context.Context, id string, pairID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE clock_events SET pair_id = $1 WHERE id = $2 RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query, pairID, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return clockevent.ErrClockEventNotFound
		}
		return fmt.Errorf("failed to set pair id: %w", err)
	}

	return nil
}

// FindOpenByStaff implements clockevent.ClockEventRepository. FOR UPDATE pins
// the returned rows for the rest of the transaction; note that an empty
// result locks nothing, which is why the clock services take the staff row
// lock before calling this. Violating attempts never started a shift and are
// excluded.
func (r *clockEventRepository) FindOpenByStaff(ctx context.Context, staffID string) ([]clockevent.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockEventColumns + `
		FROM clock_events
		WHERE staff_id = $1
		  AND event_type = 'clock_in'
		  AND pair_id IS NULL
		  AND event_status <> 'gps_violation'
		ORDER BY event_timestamp ASC
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open clock events: %w", err)
	}
	defer rows.Close()

	var events []clockevent.ClockEvent
	for rows.Next() {
		event, err := scanClockEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// ListByStaffAndPeriod implements clockevent.ClockEventRepository.
func (r *clockEventRepository) ListByStaffAndPeriod(ctx context.Context, staffID string, from, to time.Time) ([]clockevent.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockEventColumns + `
		FROM clock_events
		WHERE staff_id = $1
		  AND event_timestamp >= $2
		  AND event_timestamp < $3
		ORDER BY event_timestamp ASC
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query clock events: %w", err)
	}
	defer rows.Close()

	var events []clockevent.ClockEvent
	for rows.Next() {
		event, err := scanClockEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

func NewClockEventRepository(db *database.DB) clockevent.ClockEventRepository {
	return &clockEventRepository{db: db}
}
