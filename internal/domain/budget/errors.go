package budget

import "errors"

var (
	ErrLedgerNotFound        = errors.New("budget ledger not found")
	ErrTimesheetNotApproved  = errors.New("timesheet is not approved")
	ErrBudgetAlreadyPosted   = errors.New("timesheet has already been posted to budgets")
)
