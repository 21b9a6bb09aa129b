package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
)

type ComplianceLogRepository struct {
	mu      sync.RWMutex
	entries map[string]clockevent.ComplianceLogEntry
}

func NewComplianceLogRepository() *ComplianceLogRepository {
	return &ComplianceLogRepository{entries: make(map[string]clockevent.ComplianceLogEntry)}
}

func (r *ComplianceLogRepository) Create(ctx context.Context, entry clockevent.ComplianceLogEntry) (clockevent.ComplianceLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *ComplianceLogRepository) SetReview(ctx context.Context, id string, reviewedBy string, notes *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return clockevent.ErrComplianceLogNotFound
	}
	now := time.Now().UTC()
	entry.ReviewedBy = &reviewedBy
	entry.ReviewedAt = &now
	entry.ReviewNotes = notes
	r.entries[id] = entry
	return nil
}

func (r *ComplianceLogRepository) ListRequiringReview(ctx context.Context) ([]clockevent.ComplianceLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []clockevent.ComplianceLogEntry
	for _, e := range r.entries {
		if e.RequiresReview && e.ReviewedAt == nil {
			pending = append(pending, e)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	return pending, nil
}

// All returns every entry, for test assertions.
func (r *ComplianceLogRepository) All() []clockevent.ComplianceLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]clockevent.ComplianceLogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	return entries
}
