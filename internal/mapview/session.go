// Package mapview is an in-process map that records which overlays are shown
// and where the viewport was last fitted.
package mapview

import (
	"fmt"
	"sync"

	"github.com/jaennil/guide_helper/raster/internal/layercache"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

// DefaultCenter is the initial view, Bangkok at zoom 10.
var DefaultCenter = tilecoord.LatLng{Lat: 13.7563, Lon: 100.5018}

const DefaultZoom = 10

type Snapshot struct {
	Overlays []string
	Center   tilecoord.LatLng
	Zoom     int
	Viewport *tilecoord.Rectangle
}

type Session struct {
	mu       sync.Mutex
	overlays []layercache.Handle
	center   tilecoord.LatLng
	zoom     int
	viewport *tilecoord.Rectangle
	logger   logger.Logger
}

var _ layercache.MapAdapter = (*Session)(nil)

func NewSession(l logger.Logger) *Session {
	return &Session{
		center: DefaultCenter,
		zoom:   DefaultZoom,
		logger: l,
	}
}

func (s *Session) AddOverlay(h layercache.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.overlays {
		if o == h {
			return
		}
	}
	s.overlays = append(s.overlays, h)
	s.logger.Info("overlay added", "overlay", label(h), "overlays", len(s.overlays))
}

func (s *Session) RemoveOverlay(h layercache.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.overlays {
		if o == h {
			s.overlays = append(s.overlays[:i], s.overlays[i+1:]...)
			s.logger.Info("overlay removed", "overlay", label(h), "overlays", len(s.overlays))
			return
		}
	}
}

func (s *Session) FitViewport(r tilecoord.Rectangle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewport = &r
	s.center = tilecoord.LatLng{
		Lat: (r.SouthWest.Lat + r.NorthEast.Lat) / 2,
		Lon: (r.SouthWest.Lon + r.NorthEast.Lon) / 2,
	}
	s.zoom = fitZoom(r)
	s.logger.Info("viewport fitted", "viewport", r.String(), "zoom", s.zoom)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Center: s.center, Zoom: s.zoom}
	for _, o := range s.overlays {
		snap.Overlays = append(snap.Overlays, label(o))
	}
	if s.viewport != nil {
		v := *s.viewport
		snap.Viewport = &v
	}
	return snap
}

// fitZoom is the deepest zoom whose single-tile span still covers the
// rectangle's longer side.
func fitZoom(r tilecoord.Rectangle) int {
	span := r.NorthEast.Lon - r.SouthWest.Lon
	if h := r.NorthEast.Lat - r.SouthWest.Lat; h > span {
		span = h
	}
	zoom := 0
	for w := 360.0; zoom < 22 && w/2 >= span; w /= 2 {
		zoom++
	}
	return zoom
}

func label(h layercache.Handle) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%p", h)
}
