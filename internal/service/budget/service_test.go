package budget

import (
	"context"
	"testing"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/budget"
	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/fieldserve/rostering-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type budgetFixture struct {
	svc        budget.PosterService
	ledgers    *memory.BudgetLedgerRepository
	timesheets *memory.TimesheetRepository
}

func newBudgetFixture(t *testing.T) *budgetFixture {
	t.Helper()

	f := &budgetFixture{
		ledgers:    memory.NewBudgetLedgerRepository(),
		timesheets: memory.NewTimesheetRepository(),
	}
	f.svc = NewPosterService(memory.NewTxManager(), f.ledgers, f.timesheets)
	return f
}

func clientPtr(v string) *string { return &v }

func (f *budgetFixture) seedTimesheet(t *testing.T, id string, status timesheet.Status, entries []timesheet.Entry) {
	t.Helper()

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.TotalHours)
	}

	_, err := f.timesheets.CreateWithEntries(context.Background(), timesheet.Timesheet{
		ID:          id,
		StaffID:     "staff-1",
		PeriodStart: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		Status:      status,
		TotalHours:  total,
		Entries:     entries,
	})
	require.NoError(t, err)
}

func TestPostTimesheetChargesBudgets(t *testing.T) {
	t.Parallel()
	f := newBudgetFixture(t)

	f.ledgers.Put(budget.Ledger{
		ID:             "ledger-1",
		ClientID:       "client-1",
		ServiceType:    "personal_care",
		TotalAllocated: decimal.NewFromInt(40),
		Used:           decimal.NewFromInt(10),
		Remaining:      decimal.NewFromInt(30),
	})

	f.seedTimesheet(t, "ts-1", timesheet.StatusApproved, []timesheet.Entry{
		{ID: "e-1", TimesheetID: "ts-1", ClientID: clientPtr("client-1"), ServiceType: "personal_care", TotalHours: decimal.NewFromInt(9)},
		{ID: "e-2", TimesheetID: "ts-1", ClientID: clientPtr("client-1"), ServiceType: "personal_care", TotalHours: decimal.NewFromFloat(3.5)},
	})

	result, err := f.svc.PostTimesheet(context.Background(), "ts-1")
	require.NoError(t, err)

	require.Len(t, result.Postings, 1)
	posting := result.Postings[0]
	assert.Equal(t, "client-1", posting.ClientID)
	assert.True(t, posting.Hours.Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, posting.Used.Equal(decimal.NewFromFloat(22.5)))
	assert.True(t, posting.Remaining.Equal(decimal.NewFromFloat(17.5)))

	ledger, err := f.ledgers.GetForUpdate(context.Background(), "client-1", "personal_care")
	require.NoError(t, err)
	assert.True(t, ledger.Used.Equal(decimal.NewFromFloat(22.5)))
	assert.True(t, ledger.Remaining.Equal(ledger.TotalAllocated.Sub(ledger.Used)))

	ts, err := f.timesheets.GetByID(context.Background(), "ts-1")
	require.NoError(t, err)
	assert.NotNil(t, ts.BudgetPostedAt)
}

func TestPostTimesheetIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newBudgetFixture(t)

	f.ledgers.Put(budget.Ledger{
		ID:             "ledger-1",
		ClientID:       "client-1",
		ServiceType:    "standard",
		TotalAllocated: decimal.NewFromInt(20),
		Used:           decimal.Zero,
		Remaining:      decimal.NewFromInt(20),
	})

	f.seedTimesheet(t, "ts-1", timesheet.StatusApproved, []timesheet.Entry{
		{ID: "e-1", TimesheetID: "ts-1", ClientID: clientPtr("client-1"), ServiceType: "standard", TotalHours: decimal.NewFromInt(6)},
	})

	_, err := f.svc.PostTimesheet(context.Background(), "ts-1")
	require.NoError(t, err)

	_, err = f.svc.PostTimesheet(context.Background(), "ts-1")
	require.ErrorIs(t, err, budget.ErrBudgetAlreadyPosted)

	// Usage moved exactly once.
	ledger, err := f.ledgers.GetForUpdate(context.Background(), "client-1", "standard")
	require.NoError(t, err)
	assert.True(t, ledger.Used.Equal(decimal.NewFromInt(6)))
}

func TestPostTimesheetRequiresApproval(t *testing.T) {
	t.Parallel()
	f := newBudgetFixture(t)

	f.seedTimesheet(t, "ts-1", timesheet.StatusPendingApproval, []timesheet.Entry{
		{ID: "e-1", TimesheetID: "ts-1", ClientID: clientPtr("client-1"), ServiceType: "standard", TotalHours: decimal.NewFromInt(6)},
	})

	_, err := f.svc.PostTimesheet(context.Background(), "ts-1")
	require.ErrorIs(t, err, budget.ErrTimesheetNotApproved)
}

func TestPostTimesheetSkipsMissingLedgers(t *testing.T) {
	t.Parallel()
	f := newBudgetFixture(t)

	f.seedTimesheet(t, "ts-1", timesheet.StatusApproved, []timesheet.Entry{
		{ID: "e-1", TimesheetID: "ts-1", ClientID: clientPtr("client-without-budget"), ServiceType: "standard", TotalHours: decimal.NewFromInt(4)},
	})

	result, err := f.svc.PostTimesheet(context.Background(), "ts-1")
	require.NoError(t, err)

	assert.Empty(t, result.Postings)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "client-without-budget", result.Skipped[0].ClientID)
	assert.True(t, result.Skipped[0].Hours.Equal(decimal.NewFromInt(4)))

	// The run still completes and the guard is set.
	ts, err := f.timesheets.GetByID(context.Background(), "ts-1")
	require.NoError(t, err)
	assert.NotNil(t, ts.BudgetPostedAt)
}

func TestPostTimesheetIgnoresEntriesWithoutClient(t *testing.T) {
	t.Parallel()
	f := newBudgetFixture(t)

	f.seedTimesheet(t, "ts-1", timesheet.StatusApproved, []timesheet.Entry{
		{ID: "e-1", TimesheetID: "ts-1", ServiceType: "standard", TotalHours: decimal.NewFromInt(5)},
	})

	result, err := f.svc.PostTimesheet(context.Background(), "ts-1")
	require.NoError(t, err)

	assert.Empty(t, result.Postings)
	assert.Empty(t, result.Skipped)
}

func TestPostTimesheetMissing(t *testing.T) {
	t.Parallel()
	f := newBudgetFixture(t)

	_, err := f.svc.PostTimesheet(context.Background(), "missing")
	require.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}
