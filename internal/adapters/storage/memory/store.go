// Package memory provides an in-process scratch store.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

type store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewStore() ports.ScratchStore {
	return &store{slots: make(map[string][]byte)}
}

func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, domain.ErrSlotEmpty
	}
	return slices.Clone(v), nil
}

func (s *store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = slices.Clone(value)
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}
