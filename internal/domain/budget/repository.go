package budget

import (
	"context"

	"github.com/shopspring/decimal"
)

type LedgerRepository interface {
	// GetForUpdate retrieves the ledger row for a client/service-type pair,
	// locked for the surrounding transaction. Returns ErrLedgerNotFound when
	// no budget exists for the pair.
	GetForUpdate(ctx context.Context, clientID string, serviceType string) (Ledger, error)

	// UpdateUsage writes back accrued usage and the recomputed remainder.
	UpdateUsage(ctx context.Context, id string, used decimal.Decimal, remaining decimal.Decimal) error
}
