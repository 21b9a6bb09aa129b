package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
)

type ClockEventRepository struct {
	mu     sync.RWMutex
	events map[string]clockevent.ClockEvent
}

func NewClockEventRepository() *ClockEventRepository {
	return &ClockEventRepository{events: make(map[string]clockevent.ClockEvent)}
}

func (r *ClockEventRepository) Create(ctx context.Context, event clockevent.ClockEvent) (clockevent.ClockEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	r.events[event.ID] = event
	return event, nil
}

func (r *ClockEventRepository) GetByID(ctx context.Context, id string) (clockevent.ClockEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return clockevent.ClockEvent{}, clockevent.ErrClockEventNotFound
	}
	return event, nil
}

func (r *ClockEventRepository) SetPairID(ctx context.Context, id string, pairID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return clockevent.ErrClockEventNotFound
	}
	event.PairID = &pairID
	r.events[id] = event
	return nil
}

func (r *ClockEventRepository) FindOpenByStaff(ctx context.Context, staffID string) ([]clockevent.ClockEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var open []clockevent.ClockEvent
	for _, e := range r.events {
		if e.StaffID == staffID &&
			e.Type == clockevent.TypeClockIn &&
			e.PairID == nil &&
			e.Status != clockevent.StatusGPSViolation {
			open = append(open, e)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Timestamp.Before(open[j].Timestamp) })
	return open, nil
}

func (r *ClockEventRepository) ListByStaffAndPeriod(ctx context.Context, staffID string, from, to time.Time) ([]clockevent.ClockEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []clockevent.ClockEvent
	for _, e := range r.events {
		if e.StaffID == staffID && !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })
	return events, nil
}
