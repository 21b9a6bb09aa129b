package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDecomposer(holidays ...string) *Decomposer {
	cal := memory.NewHolidayCalendarRepository()
	for _, d := range holidays {
		cal.Add(d)
	}
	return NewDecomposer(cal, time.UTC)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestDecomposeWeekdayShift(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer()

	// Monday 08:00 to 17:00.
	hours, err := d.Decompose(context.Background(), mustDate(t, "2025-06-02 08:00"), mustDate(t, "2025-06-02 17:00"))
	require.NoError(t, err)

	assert.True(t, hours.Weekday.Equal(decimal.NewFromInt(9)), "weekday hours: %s", hours.Weekday)
	assert.True(t, hours.Evening.IsZero())
	assert.True(t, hours.Night.IsZero())
	assert.True(t, hours.Total().Equal(decimal.NewFromInt(9)))
}

func TestDecomposeOvernightFridayShift(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer()

	// Friday 22:00 to Saturday 02:00: two evening hours then two night hours.
	hours, err := d.Decompose(context.Background(), mustDate(t, "2025-06-06 22:00"), mustDate(t, "2025-06-07 02:00"))
	require.NoError(t, err)

	assert.True(t, hours.Evening.Equal(decimal.NewFromInt(2)), "evening hours: %s", hours.Evening)
	assert.True(t, hours.Night.Equal(decimal.NewFromInt(2)), "night hours: %s", hours.Night)
	assert.True(t, hours.Saturday.IsZero(), "evening and night outrank saturday")
	assert.True(t, hours.Total().Equal(decimal.NewFromInt(4)))
}

func TestDecomposeWeekendDaytime(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer()

	// Saturday 10:00 to 12:00.
	hours, err := d.Decompose(context.Background(), mustDate(t, "2025-06-07 10:00"), mustDate(t, "2025-06-07 12:00"))
	require.NoError(t, err)
	assert.True(t, hours.Saturday.Equal(decimal.NewFromInt(2)))

	// Sunday 10:00 to 12:00.
	hours, err = d.Decompose(context.Background(), mustDate(t, "2025-06-08 10:00"), mustDate(t, "2025-06-08 12:00"))
	require.NoError(t, err)
	assert.True(t, hours.Sunday.Equal(decimal.NewFromInt(2)))
}

func TestDecomposeHolidayOutranksEverything(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer("2025-06-07")

	// Saturday evening on a declared public holiday.
	hours, err := d.Decompose(context.Background(), mustDate(t, "2025-06-07 17:00"), mustDate(t, "2025-06-07 21:00"))
	require.NoError(t, err)

	assert.True(t, hours.PublicHoliday.Equal(decimal.NewFromInt(4)), "holiday hours: %s", hours.PublicHoliday)
	assert.True(t, hours.Evening.IsZero())
	assert.True(t, hours.Saturday.IsZero())
}

func TestDecomposePartialIncrements(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer()

	// 08:15 to 17:45 is 9.5 hours; the buckets must conserve it exactly.
	hours, err := d.Decompose(context.Background(), mustDate(t, "2025-06-02 08:15"), mustDate(t, "2025-06-02 17:45"))
	require.NoError(t, err)

	expected := decimal.NewFromFloat(9.5)
	assert.True(t, hours.Total().Equal(expected), "total: %s", hours.Total())
}

func TestDecomposeConservation(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer("2025-06-09")

	cases := []struct {
		start, end string
	}{
		{"2025-06-02 09:00", "2025-06-02 09:01"},
		{"2025-06-06 16:30", "2025-06-07 03:10"},
		{"2025-06-08 23:00", "2025-06-09 08:45"},
		{"2025-06-02 00:00", "2025-06-03 00:00"},
	}

	for _, tc := range cases {
		start := mustDate(t, tc.start)
		end := mustDate(t, tc.end)

		hours, err := d.Decompose(context.Background(), start, end)
		require.NoError(t, err)

		duration := decimal.NewFromInt(end.Sub(start).Nanoseconds()).Div(decimal.NewFromInt(int64(time.Hour)))
		assert.True(t, hours.Total().Equal(duration),
			"buckets for [%s, %s) sum to %s, want %s", tc.start, tc.end, hours.Total(), duration)
	}
}

func TestDecomposeSubSecondTimestamps(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer()

	// Event timestamps carry sub-second precision; the buckets must still
	// sum to the exact duration.
	start := time.Date(2025, 6, 2, 8, 59, 59, 250_000_000, time.UTC)
	end := time.Date(2025, 6, 2, 10, 30, 0, 750_000_000, time.UTC)

	hours, err := d.Decompose(context.Background(), start, end)
	require.NoError(t, err)

	duration := decimal.NewFromInt(end.Sub(start).Nanoseconds()).Div(decimal.NewFromInt(int64(time.Hour)))
	assert.True(t, hours.Total().Equal(duration), "total %s, want %s", hours.Total(), duration)
}

func TestDecomposeEmptyInterval(t *testing.T) {
	t.Parallel()
	d := newTestDecomposer()

	hours, err := d.Decompose(context.Background(), mustDate(t, "2025-06-02 09:00"), mustDate(t, "2025-06-02 09:00"))
	require.NoError(t, err)
	assert.True(t, hours.Total().IsZero())
}
