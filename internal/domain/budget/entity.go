package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the per-client, per-service-type record of allocated vs consumed
// hours. The record is owned externally; this core only accrues usage.
// Invariant: Remaining = TotalAllocated - Used after every posting.
type Ledger struct {
	ID             string
	ClientID       string
	ServiceType    string
	TotalAllocated decimal.Decimal
	Used           decimal.Decimal
	Remaining      decimal.Decimal
	UpdatedAt      time.Time
}
