package clockevent

import "context"

type ClockService interface {
	ClockIn(ctx context.Context, req ClockRequest) (ClockActionResult, error)
	ClockOut(ctx context.Context, req ClockRequest) (ClockActionResult, error)
	GetActiveClockIn(ctx context.Context, staffID string) (ActiveClockInResponse, error)
}
