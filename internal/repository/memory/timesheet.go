package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
)

type TimesheetRepository struct {
	mu     sync.RWMutex
	sheets map[string]timesheet.Timesheet
}

func NewTimesheetRepository() *TimesheetRepository {
	return &TimesheetRepository{sheets: make(map[string]timesheet.Timesheet)}
}

func copySheet(ts timesheet.Timesheet) timesheet.Timesheet {
	entries := make([]timesheet.Entry, len(ts.Entries))
	copy(entries, ts.Entries)
	ts.Entries = entries
	return ts
}

func (r *TimesheetRepository) CreateWithEntries(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	ts.CreatedAt = now
	ts.UpdatedAt = now
	r.sheets[ts.ID] = copySheet(ts)
	return ts, nil
}

func (r *TimesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts, ok := r.sheets[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return copySheet(ts), nil
}

// GetByIDForUpdate relies on the transaction manager's serialization; there
// is no row-level locking in memory.
func (r *TimesheetRepository) GetByIDForUpdate(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return r.GetByID(ctx, id)
}

func (r *TimesheetRepository) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.Timesheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sheets []timesheet.Timesheet
	for _, ts := range r.sheets {
		if filter.StaffID != nil && ts.StaffID != *filter.StaffID {
			continue
		}
		if filter.Status != nil && ts.Status != *filter.Status {
			continue
		}
		ts.Entries = nil
		sheets = append(sheets, ts)
	}
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].PeriodStart.After(sheets[j].PeriodStart) })
	return sheets, nil
}

func (r *TimesheetRepository) SetApproval(ctx context.Context, id string, status timesheet.Status, actorID string, at time.Time, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts, ok := r.sheets[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	ts.Status = status
	if status == timesheet.StatusRejected {
		ts.RejectedBy = &actorID
		ts.RejectedAt = &at
		ts.RejectionReason = reason
	} else {
		ts.ApprovedBy = &actorID
		ts.ApprovedAt = &at
	}
	ts.UpdatedAt = time.Now().UTC()
	r.sheets[id] = ts
	return nil
}

func (r *TimesheetRepository) MarkBudgetPosted(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts, ok := r.sheets[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	ts.BudgetPostedAt = &at
	ts.UpdatedAt = time.Now().UTC()
	r.sheets[id] = ts
	return nil
}
