package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jotpad/jotpad/internal/note"
)

// MemoryRepo is a slice-backed in-memory repository, used for tests and for
// running without MongoDB. The slice keeps insertion order, which is the
// order List returns.
type MemoryRepo struct {
	mu    sync.RWMutex
	notes []*note.Note
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(ctx context.Context, n *note.Note) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.ReceivedAt = time.Now().UTC()
	cp := *n
	m.notes = append(m.notes, &cp)
	return n.ID, nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*note.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*note.Note, 0, len(m.notes))
	for _, n := range m.notes {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}
