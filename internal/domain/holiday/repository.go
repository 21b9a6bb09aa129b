package holiday

import (
	"context"
	"time"
)

// CalendarRepository is the public-holiday calendar lookup, keyed by calendar
// date. Read-only collaborator; the calendar itself is maintained externally.
type CalendarRepository interface {
	// IsHoliday reports whether the calendar date of t (time-of-day ignored)
	// is a declared public holiday.
	IsHoliday(ctx context.Context, t time.Time) (bool, error)
}
