package layer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jaennil/guide_helper/raster/internal/entity"
)

type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	layers map[int64]entity.Layer
	now    func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		layers: make(map[int64]entity.Layer),
		now:    time.Now,
	}
}

func (s *MemoryStore) List(_ context.Context) ([]entity.Layer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Layer, 0, len(s.layers))
	for _, l := range s.layers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (entity.Layer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.layers[id]
	if !ok {
		return entity.Layer{}, ErrNotFound
	}
	return l, nil
}

func (s *MemoryStore) Create(_ context.Context, nl NewLayer) (entity.Layer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	l := entity.Layer{
		ID:        s.nextID,
		Name:      nl.Name,
		Path:      nl.Path,
		Bounds:    nl.Bounds,
		ObjectKey: nl.ObjectKey,
		CreatedAt: s.now().UTC(),
	}
	s.layers[l.ID] = l
	return l, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.layers[id]; !ok {
		return ErrNotFound
	}
	delete(s.layers, id)
	return nil
}
