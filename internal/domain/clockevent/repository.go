package clockevent

import (
	"context"
	"time"
)

// ClockEventRepository defines data access for clock events. Implementations
// must honor the transaction in the context (see database.TxManager) so the
// open-shift check and the insert run under one isolation boundary.
type ClockEventRepository interface {
	// Create persists a new clock event.
	Create(ctx context.Context, event ClockEvent) (ClockEvent, error)

	// GetByID retrieves a clock event, returning ErrClockEventNotFound when absent.
	GetByID(ctx context.Context, id string) (ClockEvent, error)

	// SetPairID resolves one side of a pairing.
	SetPairID(ctx context.Context, id string, pairID string) error

	// FindOpenByStaff returns the staff member's clock-ins that have no
	// matching clock-out yet, oldest first. Violating attempts are excluded:
	// they never started a shift. Inside a transaction the rows are locked
	// so concurrent clock-ins serialize on the overlap check.
	FindOpenByStaff(ctx context.Context, staffID string) ([]ClockEvent, error)

	// ListByStaffAndPeriod returns all events with timestamp in [from, to),
	// ordered by timestamp ascending.
	ListByStaffAndPeriod(ctx context.Context, staffID string, from, to time.Time) ([]ClockEvent, error)
}

// ComplianceLogRepository defines the write contract for the audit log.
// Entries are append-only; only the review metadata is ever updated, and only
// by the external review workflow.
type ComplianceLogRepository interface {
	Create(ctx context.Context, entry ComplianceLogEntry) (ComplianceLogEntry, error)

	// SetReview records the human reviewer's resolution.
	SetReview(ctx context.Context, id string, reviewedBy string, notes *string) error

	// ListRequiringReview returns unreviewed entries flagged for attention.
	ListRequiringReview(ctx context.Context) ([]ComplianceLogEntry, error)
}
