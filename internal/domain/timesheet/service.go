package timesheet

import (
	"context"
	"time"
)

type TimesheetService interface {
	Generate(ctx context.Context, req GenerateRequest) (TimesheetResponse, error)
	GenerateWeekly(ctx context.Context, weekStart time.Time) (WeeklyBatchResult, error)
	Approve(ctx context.Context, id string, approvedByID string) (TimesheetResponse, error)
	Reject(ctx context.Context, id string, rejectedByID string, reason string) (TimesheetResponse, error)
	Get(ctx context.Context, id string) (TimesheetResponse, error)
	List(ctx context.Context, filter Filter) ([]TimesheetResponse, error)
}
