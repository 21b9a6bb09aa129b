package memory

import (
	"context"
	"sync"
	"time"
)

type HolidayCalendarRepository struct {
	mu    sync.RWMutex
	dates map[string]bool
}

func NewHolidayCalendarRepository() *HolidayCalendarRepository {
	return &HolidayCalendarRepository{dates: make(map[string]bool)}
}

// Add declares a calendar date a public holiday.
func (r *HolidayCalendarRepository) Add(date string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates[date] = true
}

func (r *HolidayCalendarRepository) IsHoliday(ctx context.Context, t time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dates[t.Format("2006-01-02")], nil
}
