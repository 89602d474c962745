// Package layercache tracks which raster layers have been fetched and decoded
// and which of them are currently shown on a map.
package layercache

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/jaennil/guide_helper/raster/internal/entity"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/jaennil/guide_helper/raster/pkg/metrics"
)

// Handle is a decoded raster ready to be overlaid on a map. Handles that also
// implement io.Closer are closed when the manager drops them.
type Handle interface {
	Bounds() (tilecoord.Rectangle, error)
}

// Loader fetches the raw bytes of a layer and decodes them into a Handle.
type Loader interface {
	Load(ctx context.Context, layer entity.Layer) (Handle, error)
}

// MapAdapter is the map widget the manager drives. Its methods are called
// with the manager's lock held and must not call back into the manager.
type MapAdapter interface {
	AddOverlay(h Handle)
	RemoveOverlay(h Handle)
	FitViewport(r tilecoord.Rectangle)
}

// NotifyFunc receives load failures. The error always matches ErrLayerLoadFailed.
type NotifyFunc func(err error)

type entry struct {
	state   State
	handle  Handle
	episode uint64
}

type Manager struct {
	loader Loader
	view   MapAdapter
	notify NotifyFunc
	logger logger.Logger

	mu       sync.Mutex
	entries  map[int64]*entry
	episodes uint64

	inflight sync.WaitGroup
}

func NewManager(loader Loader, view MapAdapter, notify NotifyFunc, l logger.Logger) *Manager {
	return &Manager{
		loader:  loader,
		view:    view,
		notify:  notify,
		logger:  l,
		entries: make(map[int64]*entry),
	}
}

// Toggle shows or hides a layer and returns the state it ends up in. An idle
// layer starts loading in the background; a toggle while loading is ignored.
func (m *Manager) Toggle(ctx context.Context, layer entity.Layer) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[layer.ID]
	if !ok {
		m.episodes++
		e = &entry{state: Loading, episode: m.episodes}
		m.entries[layer.ID] = e

		m.logger.Debug("layer load started", "layer_id", layer.ID, "name", layer.Name)

		m.inflight.Add(1)
		go m.load(ctx, layer, e.episode)
		return Loading
	}

	switch e.state {
	case Loading:
		m.logger.Debug("layer toggle ignored while loading", "layer_id", layer.ID)
	case CachedHidden:
		m.show(layer.ID, e)
	case CachedVisible:
		m.view.RemoveOverlay(e.handle)
		e.state = CachedHidden
		m.logger.Debug("layer hidden", "layer_id", layer.ID)
	}

	return e.state
}

func (m *Manager) load(ctx context.Context, layer entity.Layer, episode uint64) {
	defer m.inflight.Done()

	metrics.LayerLoads.Inc()

	h, err := m.loader.Load(ctx, layer)
	if err == nil && h == nil {
		err = errors.New("loader returned no handle")
	}

	m.mu.Lock()

	e, ok := m.entries[layer.ID]
	if !ok || e.episode != episode {
		m.mu.Unlock()

		metrics.LayerStaleCompletions.Inc()
		m.logger.Debug("discarding stale layer load", "layer_id", layer.ID, "error", err)
		if err == nil {
			m.destroy(layer.ID, h)
		}
		return
	}

	if err != nil {
		delete(m.entries, layer.ID)
		m.mu.Unlock()

		metrics.LayerLoadFailures.Inc()
		loadErr := &LoadError{LayerID: layer.ID, Name: layer.Name, Err: err}
		m.logger.Warn("layer load failed", "layer_id", layer.ID, "name", layer.Name, "error", err)
		if m.notify != nil {
			m.notify(loadErr)
		}
		return
	}

	e.handle = h
	m.show(layer.ID, e)
	m.mu.Unlock()

	m.logger.Info("layer loaded", "layer_id", layer.ID, "name", layer.Name)
}

// show puts a cached handle on the map. The viewport is re-fit on every show,
// not only after the first load.
func (m *Manager) show(id int64, e *entry) {
	m.view.AddOverlay(e.handle)
	e.state = CachedVisible

	r, err := e.handle.Bounds()
	if err != nil {
		m.logger.Warn("layer bounds unusable, viewport fit skipped", "layer_id", id, "error", err)
		return
	}
	m.view.FitViewport(r)
}

// Evict forgets a layer, typically because it was deleted from the catalog.
// It reports whether the layer was tracked at all.
func (m *Manager) Evict(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.evictLocked(id)
}

func (m *Manager) evictLocked(id int64) bool {
	e, ok := m.entries[id]
	if !ok {
		return false
	}
	delete(m.entries, id)

	if e.state == CachedVisible {
		m.view.RemoveOverlay(e.handle)
	}
	if e.handle != nil {
		m.destroy(id, e.handle)
	}

	m.logger.Debug("layer evicted", "layer_id", id, "state", e.state)
	return true
}

// Clear evicts every tracked layer. Loads still in flight become stale.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.entries {
		m.evictLocked(id)
	}
}

// Wait blocks until every load started so far has completed.
func (m *Manager) Wait() {
	m.inflight.Wait()
}

func (m *Manager) destroy(id int64, h Handle) {
	c, ok := h.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		m.logger.Warn("failed to release layer handle", "layer_id", id, "error", err)
	}
}

func (m *Manager) State(id int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[id]; ok {
		return e.state
	}
	return Idle
}

func (m *Manager) IsActive(id int64) bool {
	return m.State(id) == CachedVisible
}

func (m *Manager) IsLoading(id int64) bool {
	return m.State(id) == Loading
}

func (m *Manager) IsCached(id int64) bool {
	s := m.State(id)
	return s == CachedHidden || s == CachedVisible
}

// Tracked returns the ids of all non-idle layers in ascending order.
func (m *Manager) Tracked() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
