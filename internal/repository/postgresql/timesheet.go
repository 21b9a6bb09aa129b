package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const timesheetColumns = `
	id, staff_id, period_start, period_end, status,
	weekday_hours, saturday_hours, sunday_hours, public_holiday_hours,
	evening_hours, night_hours, total_hours,
	approved_by, approved_at, rejected_by, rejected_at, rejection_reason,
	budget_posted_at, created_at, updated_at
`

type timesheetRepository struct {
	db *database.DB
}

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(
		&ts.ID, &ts.StaffID, &ts.PeriodStart, &ts.PeriodEnd, &ts.Status,
		&ts.Hours.Weekday, &ts.Hours.Saturday, &ts.Hours.Sunday, &ts.Hours.PublicHoliday,
		&ts.Hours.Evening, &ts.Hours.Night, &ts.TotalHours,
		&ts.ApprovedBy, &ts.ApprovedAt, &ts.RejectedBy, &ts.RejectedAt, &ts.RejectionReason,
		&ts.BudgetPostedAt, &ts.CreatedAt, &ts.UpdatedAt,
	)
	return ts, err
}

// CreateWithEntries implements timesheet.TimesheetRepository. Callers run this
// inside a transaction; the timesheet and its entries land together or not at
// all.
func (r *timesheetRepository) CreateWithEntries(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (
			id, staff_id, period_start, period_end, status,
			weekday_hours, saturday_hours, sunday_hours, public_holiday_hours,
			evening_hours, night_hours, total_hours,
			approved_by, approved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ts.ID,
		ts.StaffID,
		ts.PeriodStart,
		ts.PeriodEnd,
		ts.Status,
		ts.Hours.Weekday,
		ts.Hours.Saturday,
		ts.Hours.Sunday,
		ts.Hours.PublicHoliday,
		ts.Hours.Evening,
		ts.Hours.Night,
		ts.TotalHours,
		ts.ApprovedBy,
		ts.ApprovedAt,
	).Scan(&ts.CreatedAt, &ts.UpdatedAt)

	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	entryQuery := `
		INSERT INTO timesheet_entries (
			id, timesheet_id, appointment_id, client_id, service_type, entry_date,
			clock_in_time, clock_out_time,
			weekday_hours, saturday_hours, sunday_hours, public_holiday_hours,
			evening_hours, night_hours, total_hours, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`

	for _, e := range ts.Entries {
		if _, err := q.Exec(ctx, entryQuery,
			e.ID,
			e.TimesheetID,
			e.AppointmentID,
			e.ClientID,
			e.ServiceType,
			e.Date,
			e.ClockInTime,
			e.ClockOutTime,
			e.Hours.Weekday,
			e.Hours.Saturday,
			e.Hours.Sunday,
			e.Hours.PublicHoliday,
			e.Hours.Evening,
			e.Hours.Night,
			e.TotalHours,
			e.Notes,
		); err != nil {
			return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet entry: %w", err)
		}
	}

	return ts, nil
}

func (r *timesheetRepository) getByID(ctx context.Context, id string, forUpdate bool) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	ts, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}

	entryQuery := `
		SELECT
			id, timesheet_id, appointment_id, client_id, service_type, entry_date,
			clock_in_time, clock_out_time,
			weekday_hours, saturday_hours, sunday_hours, public_holiday_hours,
			evening_hours, night_hours, total_hours, notes
		FROM timesheet_entries
		WHERE timesheet_id = $1
		ORDER BY clock_in_time ASC
	`

	rows, err := q.Query(ctx, entryQuery, id)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to query timesheet entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e timesheet.Entry
		if err := rows.Scan(
			&e.ID, &e.TimesheetID, &e.AppointmentID, &e.ClientID, &e.ServiceType, &e.Date,
			&e.ClockInTime, &e.ClockOutTime,
			&e.Hours.Weekday, &e.Hours.Saturday, &e.Hours.Sunday, &e.Hours.PublicHoliday,
			&e.Hours.Evening, &e.Hours.Night, &e.TotalHours, &e.Notes,
		); err != nil {
			return timesheet.Timesheet{}, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		ts.Entries = append(ts.Entries, e)
	}

	return ts, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByIDForUpdate(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return r.getByID(ctx, id, true)
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.StaffID != nil {
		query += fmt.Sprintf(" AND staff_id = $%d", argIndex)
		args = append(args, *filter.StaffID)
		argIndex++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	query += " ORDER BY period_start DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, ts)
	}

	return sheets, nil
}

// SetApproval implements timesheet.TimesheetRepository.
func (r *timesheetRepository) SetApproval(ctx context.Context, id string, status timesheet.Status, actorID string, at time.Time, reason *string) error {
	q := GetQuerier(ctx, r.db)

	var query string
	if status == timesheet.StatusRejected {
		query = `
			UPDATE timesheets
			SET status = $1, rejected_by = $2, rejected_at = $3, rejection_reason = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING id
		`
	} else {
		query = `
			UPDATE timesheets
			SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING id
		`
	}

	var updatedID string
	if err := q.QueryRow(ctx, query, status, actorID, at, reason, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to set timesheet approval: %w", err)
	}

	return nil
}

// MarkBudgetPosted implements timesheet.TimesheetRepository.
func (r *timesheetRepository) MarkBudgetPosted(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET budget_posted_at = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, at, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to mark budget posted: %w", err)
	}

	return nil
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}
