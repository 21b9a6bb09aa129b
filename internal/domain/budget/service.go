package budget

import "context"

type PosterService interface {
	// PostTimesheet charges an approved timesheet's hours against the
	// matching client budgets. Runs at most once per timesheet; a second
	// invocation fails with ErrBudgetAlreadyPosted.
	PostTimesheet(ctx context.Context, timesheetID string) (PostResult, error)
}
