package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/budget"
	"github.com/shopspring/decimal"
)

type BudgetLedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]budget.Ledger
}

func NewBudgetLedgerRepository() *BudgetLedgerRepository {
	return &BudgetLedgerRepository{ledgers: make(map[string]budget.Ledger)}
}

// Put seeds a ledger row.
func (r *BudgetLedgerRepository) Put(l budget.Ledger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledgers[l.ID] = l
}

func (r *BudgetLedgerRepository) GetForUpdate(ctx context.Context, clientID string, serviceType string) (budget.Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.ledgers {
		if l.ClientID == clientID && l.ServiceType == serviceType {
			return l, nil
		}
	}
	return budget.Ledger{}, budget.ErrLedgerNotFound
}

func (r *BudgetLedgerRepository) UpdateUsage(ctx context.Context, id string, used decimal.Decimal, remaining decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.ledgers[id]
	if !ok {
		return budget.ErrLedgerNotFound
	}
	l.Used = used
	l.Remaining = remaining
	l.UpdatedAt = time.Now().UTC()
	r.ledgers[id] = l
	return nil
}
