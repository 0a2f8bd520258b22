package memory

import (
	"context"
	"sync"

	"github.com/recordgate/recordgate/admission"
	"github.com/recordgate/recordgate/record"
)

var _ admission.Store = (*store)(nil)

type store struct {
	mu    *sync.RWMutex
	items []*record.Record
}

func New() (admission.Store, error) {
	ans := store{
		mu: &sync.RWMutex{},
	}

	return &ans, nil
}

func (s *store) Append(_ context.Context, rec *record.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, rec.Clone())

	return nil
}

// All returns the stored records in insertion order. Records are cloned
// so callers cannot mutate the store's contents.
func (s *store) All(_ context.Context) ([]*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*record.Record, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}

	return out, nil
}

func (s *store) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items), nil
}
