package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type complianceLogRepository struct {
	db *database.DB
}

// Create implements clockevent.ComplianceLogRepository.
func (r *complianceLogRepository) Create(ctx context.Context, entry clockevent.ComplianceLogEntry) (clockevent.ComplianceLogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO gps_compliance_logs (
			id, event_type, staff_id, appointment_id, clock_event_id,
			latitude, longitude, expected_latitude, expected_longitude,
			distance_meters, compliant, requires_review
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EventType,
		entry.StaffID,
		entry.AppointmentID,
		entry.ClockEventID,
		entry.Latitude,
		entry.Longitude,
		entry.ExpectedLatitude,
		entry.ExpectedLongitude,
		entry.DistanceMeters,
		entry.Compliant,
		entry.RequiresReview,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return clockevent.ComplianceLogEntry{}, fmt.Errorf("failed to create compliance log entry: %w", err)
	}

	return entry, nil
}

// SetReview implements clockevent.ComplianceLogRepository.
func (r *complianceLogRepository) SetReview(ctx context.Context, id string, reviewedBy string, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE gps_compliance_logs
		SET reviewed_by = $1, reviewed_at = $2, review_notes = $3
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, reviewedBy, time.Now().UTC(), notes, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return clockevent.ErrComplianceLogNotFound
		}
		return fmt.Errorf("failed to set compliance review: %w", err)
	}

	return nil
}

// ListRequiringReview implements clockevent.ComplianceLogRepository.
func (r *complianceLogRepository) ListRequiringReview(ctx context.Context) ([]clockevent.ComplianceLogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			id, event_type, staff_id, appointment_id, clock_event_id,
			latitude, longitude, expected_latitude, expected_longitude,
			distance_meters, compliant, requires_review,
			reviewed_by, reviewed_at, review_notes, created_at
		FROM gps_compliance_logs
		WHERE requires_review = TRUE AND reviewed_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query compliance log: %w", err)
	}
	defer rows.Close()

	var entries []clockevent.ComplianceLogEntry
	for rows.Next() {
		var e clockevent.ComplianceLogEntry
		if err := rows.Scan(
			&e.ID, &e.EventType, &e.StaffID, &e.AppointmentID, &e.ClockEventID,
			&e.Latitude, &e.Longitude, &e.ExpectedLatitude, &e.ExpectedLongitude,
			&e.DistanceMeters, &e.Compliant, &e.RequiresReview,
			&e.ReviewedBy, &e.ReviewedAt, &e.ReviewNotes, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan compliance log entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func NewComplianceLogRepository(db *database.DB) clockevent.ComplianceLogRepository {
	return &complianceLogRepository{db: db}
}
