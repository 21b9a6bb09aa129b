package timesheet

import (
	"context"
	"time"
)

type TimesheetRepository interface {
	// CreateWithEntries persists a timesheet and its entries in one logical
	// operation.
	CreateWithEntries(ctx context.Context, ts Timesheet) (Timesheet, error)

	// GetByID retrieves a timesheet with its entries, returning
	// ErrTimesheetNotFound when absent.
	GetByID(ctx context.Context, id string) (Timesheet, error)

	// GetByIDForUpdate is GetByID with the timesheet row locked for the
	// duration of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Timesheet, error)

	// List retrieves timesheets (without entries) matching the filter,
	// newest period first.
	List(ctx context.Context, filter Filter) ([]Timesheet, error)

	// SetApproval records an approval or rejection outcome.
	SetApproval(ctx context.Context, id string, status Status, actorID string, at time.Time, reason *string) error

	// MarkBudgetPosted stamps the budget-posting guard.
	MarkBudgetPosted(ctx context.Context, id string, at time.Time) error
}
