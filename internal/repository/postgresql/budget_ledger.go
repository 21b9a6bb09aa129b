package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldserve/rostering-backend-go/internal/domain/budget"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type budgetLedgerRepository struct {
	db *database.DB
}

// GetForUpdate implements budget.LedgerRepository. The row lock holds until
// the surrounding transaction finishes, serializing concurrent posters on the
// same budget.
func (r *budgetLedgerRepository) GetForUpdate(ctx context.Context, clientID string, serviceType string) (budget.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, service_type, total_allocated_hours, used_hours, remaining_hours, updated_at
		FROM client_budget_ledgers
		WHERE client_id = $1 AND service_type = $2
		FOR UPDATE
	`

	var l budget.Ledger
	err := q.QueryRow(ctx, query, clientID, serviceType).Scan(
		&l.ID, &l.ClientID, &l.ServiceType, &l.TotalAllocated, &l.Used, &l.Remaining, &l.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return budget.Ledger{}, budget.ErrLedgerNotFound
		}
		return budget.Ledger{}, fmt.Errorf("failed to get budget ledger: %w", err)
	}

	return l, nil
}

// UpdateUsage implements budget.LedgerRepository.
func (r *budgetLedgerRepository) UpdateUsage(ctx context.Context, id string, used decimal.Decimal, remaining decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE client_budget_ledgers
		SET used_hours = $1, remaining_hours = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, used, remaining, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return budget.ErrLedgerNotFound
		}
		return fmt.Errorf("failed to update budget usage: %w", err)
	}

	return nil
}

func NewBudgetLedgerRepository(db *database.DB) budget.LedgerRepository {
	return &budgetLedgerRepository{db: db}
}
