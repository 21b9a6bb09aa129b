package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/budget"
	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PosterServiceImpl struct {
	tx database.TxManager
	budget.LedgerRepository
	timesheet.TimesheetRepository
}

func NewPosterService(
	tx database.TxManager,
	ledgerRepo budget.LedgerRepository,
	timesheetRepo timesheet.TimesheetRepository,
) budget.PosterService {
	return &PosterServiceImpl{
		tx:                  tx,
		LedgerRepository:    ledgerRepo,
		TimesheetRepository: timesheetRepo,
	}
}

type groupKey struct {
	clientID    string
	serviceType string
}

// PostTimesheet implements budget.PosterService. The timesheet row is locked
// and its posted flag re-checked inside the transaction, so the charge is
// applied at most once no matter how often the call is repeated.
func (s *PosterServiceImpl) PostTimesheet(ctx context.Context, timesheetID string) (budget.PostResult, error) {
	result := budget.PostResult{
		TimesheetID: timesheetID,
		Postings:    make([]budget.Posting, 0),
		Skipped:     make([]budget.SkippedGroup, 0),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ts, err := s.TimesheetRepository.GetByIDForUpdate(ctx, timesheetID)
		if err != nil {
			return err
		}

		if ts.Status != timesheet.StatusApproved {
			return budget.ErrTimesheetNotApproved
		}
		if ts.BudgetPostedAt != nil {
			return budget.ErrBudgetAlreadyPosted
		}

		// Group entry hours by (client, service type). Entries without a
		// client cannot be charged to any budget.
		groups := make(map[groupKey]decimal.Decimal)
		for _, entry := range ts.Entries {
			if entry.ClientID == nil || *entry.ClientID == "" {
				continue
			}
			key := groupKey{clientID: *entry.ClientID, serviceType: entry.ServiceType}
			groups[key] = groups[key].Add(entry.TotalHours)
		}

		// Deterministic posting order.
		keys := make([]groupKey, 0, len(groups))
		for key := range groups {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].clientID != keys[j].clientID {
				return keys[i].clientID < keys[j].clientID
			}
			return keys[i].serviceType < keys[j].serviceType
		})

		for _, key := range keys {
			hours := groups[key]

			ledger, err := s.LedgerRepository.GetForUpdate(ctx, key.clientID, key.serviceType)
			if err != nil {
				if errors.Is(err, budget.ErrLedgerNotFound) {
					slog.Warn("No budget ledger for timesheet group, skipping",
						"timesheet_id", timesheetID, "client_id", key.clientID, "service_type", key.serviceType)
					result.Skipped = append(result.Skipped, budget.SkippedGroup{
						ClientID:    key.clientID,
						ServiceType: key.serviceType,
						Hours:       hours,
					})
					continue
				}
				return fmt.Errorf("failed to load budget ledger: %w", err)
			}

			used := ledger.Used.Add(hours)
			remaining := ledger.TotalAllocated.Sub(used)

			if err := s.LedgerRepository.UpdateUsage(ctx, ledger.ID, used, remaining); err != nil {
				return fmt.Errorf("failed to update budget ledger: %w", err)
			}

			result.Postings = append(result.Postings, budget.Posting{
				ClientID:    key.clientID,
				ServiceType: key.serviceType,
				Hours:       hours,
				Used:        used,
				Remaining:   remaining,
			})
		}

		return s.TimesheetRepository.MarkBudgetPosted(ctx, timesheetID, time.Now().UTC())
	})
	if err != nil {
		return budget.PostResult{}, err
	}

	return result, nil
}
