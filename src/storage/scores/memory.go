package scores

import (
	"context"
	"sync"

	"blockblast/src/base"
)

type MemoryStore struct {
	mu    sync.Mutex
	limit int
	lists map[base.GameMode][]Record
}

func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: limit, lists: make(map[base.GameMode][]Record)}
}

func (m *MemoryStore) Append(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[r.Mode] = insert(m.lists[r.Mode], r, m.limit)
	return nil
}

func (m *MemoryStore) Top(ctx context.Context, mode base.GameMode, k int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return head(m.lists[mode], k), nil
}
