package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/bisim/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Result
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Result),
	}
}

// Save persists a copy of the result in memory.
func (s *Store) Save(ctx context.Context, result *domain.Result) error {
	copied := cloneResult(result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[result.ID] = copied
	return nil
}

// Load retrieves the result from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}

	// Copy on read so callers can't mutate the stored result through the pointer
	return cloneResult(result), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored result IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func cloneResult(r *domain.Result) *domain.Result {
	out := *r
	out.Partition = r.Partition.Clone()
	if r.Trace != nil {
		out.Trace = make([]domain.RoundTrace, len(r.Trace))
		for i, rt := range r.Trace {
			out.Trace[i] = rt
			out.Trace[i].Conflicts = append([]domain.Conflict(nil), rt.Conflicts...)
		}
	}
	return &out
}
