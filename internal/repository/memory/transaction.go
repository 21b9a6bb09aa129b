package memory

import (
	"context"
	"sync"

	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
)

type txManager struct {
	mu sync.Mutex
}

// NewTxManager returns an in-memory database.TxManager. Transactions are
// serialized behind one mutex, which gives tests the same guarantee the
// row locks give the postgres repositories: two concurrent clock-ins for
// the same staff member cannot both pass the overlap check.
func NewTxManager() database.TxManager {
	return &txManager{}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
