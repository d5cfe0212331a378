package pending

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory, concurrency-safe Store[T].
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	byID map[string]Pending[T]
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{byID: make(map[string]Pending[T])}
}

func (s *MemoryStore[T]) Put(_ context.Context, p Pending[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID] = p
	return nil
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (Pending[T], bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok, nil
}

func (s *MemoryStore[T]) Complete(_ context.Context, id string) (Pending[T], bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		var zero Pending[T]
		return zero, false, nil
	}
	delete(s.byID, id)
	return p, true, nil
}

func (s *MemoryStore[T]) Cancel(ctx context.Context, id string) (Pending[T], bool, error) {
	// same as Complete; semantic distinction at caller
	return s.Complete(ctx, id)
}

// List returns entries ordered by creation time.
func (s *MemoryStore[T]) List(_ context.Context) ([]Pending[T], error) {
	s.mu.RLock()
	out := make([]Pending[T], 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
