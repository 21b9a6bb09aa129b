package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/holiday"
	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// Evening is [18:00, 24:00), night is [00:00, 06:00), both in the business
// timezone.
const (
	eveningStartHour = 18
	nightEndHour     = 6
)

// Decomposer splits a half-open [start, end) interval into the six rate
// category buckets. The interval is walked in one-hour increments (the final
// increment may be shorter) and each increment is classified independently by
// its own start instant, which is what makes midnight and weekend crossings
// come out right. Keep this an explicit iteration: the category boundaries
// are not expressible as a single arithmetic rule.
type Decomposer struct {
	holidays holiday.CalendarRepository
	loc      *time.Location
}

func NewDecomposer(holidays holiday.CalendarRepository, loc *time.Location) *Decomposer {
	return &Decomposer{
		holidays: holidays,
		loc:      loc,
	}
}

// Decompose classifies [start, end) into category hours. The buckets sum to
// the interval's exact duration.
func (d *Decomposer) Decompose(ctx context.Context, start, end time.Time) (timesheet.CategoryHours, error) {
	var hours timesheet.CategoryHours
	if !end.After(start) {
		return hours, nil
	}

	// One calendar lookup per distinct date in the interval.
	holidayByDate := make(map[string]bool)

	for cur := start; cur.Before(end); {
		step := time.Hour
		if remaining := end.Sub(cur); remaining < step {
			step = remaining
		}

		local := cur.In(d.loc)
		dateKey := local.Format("2006-01-02")
		isHoliday, cached := holidayByDate[dateKey]
		if !cached {
			var err error
			isHoliday, err = d.holidays.IsHoliday(ctx, local)
			if err != nil {
				return timesheet.CategoryHours{}, fmt.Errorf("failed to look up public holiday calendar: %w", err)
			}
			holidayByDate[dateKey] = isHoliday
		}

		// Nanosecond-based so sub-second timestamps still conserve exactly.
		increment := decimal.NewFromInt(step.Nanoseconds()).Div(decimal.NewFromInt(int64(time.Hour)))
		hours = hours.AddTo(classify(local, isHoliday), increment)

		cur = cur.Add(step)
	}

	return hours, nil
}

// classify picks exactly one category for an increment's start instant.
// Precedence, first match wins: public holiday, evening, night, Sunday,
// Saturday, weekday.
func classify(local time.Time, isHoliday bool) timesheet.RateCategory {
	switch {
	case isHoliday:
		return timesheet.CategoryPublicHoliday
	case local.Hour() >= eveningStartHour:
		return timesheet.CategoryEvening
	case local.Hour() < nightEndHour:
		return timesheet.CategoryNight
	case local.Weekday() == time.Sunday:
		return timesheet.CategorySunday
	case local.Weekday() == time.Saturday:
		return timesheet.CategorySaturday
	default:
		return timesheet.CategoryWeekday
	}
}
