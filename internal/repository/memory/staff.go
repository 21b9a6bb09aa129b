package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fieldserve/rostering-backend-go/internal/domain/staff"
)

type StaffRepository struct {
	mu      sync.RWMutex
	members map[string]staff.Staff
}

func NewStaffRepository() *StaffRepository {
	return &StaffRepository{members: make(map[string]staff.Staff)}
}

// Put seeds a staff record.
func (r *StaffRepository) Put(s staff.Staff) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[s.ID] = s
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.members[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

// GetByIDForUpdate relies on the transaction manager's serialization; there
// is no row-level locking in memory.
func (r *StaffRepository) GetByIDForUpdate(ctx context.Context, id string) (staff.Staff, error) {
	return r.GetByID(ctx, id)
}

func (r *StaffRepository) ListActive(ctx context.Context) ([]staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []staff.Staff
	for _, s := range r.members {
		if s.Active {
			active = append(active, s)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].FullName < active[j].FullName })
	return active, nil
}
