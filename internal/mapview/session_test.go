package mapview

import (
	"testing"

	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overlay string

func (o *overlay) Bounds() (tilecoord.Rectangle, error) { return tilecoord.Rectangle{}, nil }
func (o *overlay) String() string                        { return string(*o) }

func TestSessionOverlays(t *testing.T) {
	s := NewSession(logger.NewNoOp())
	a, b := overlay("a"), overlay("b")

	s.AddOverlay(&a)
	s.AddOverlay(&b)
	s.AddOverlay(&a)
	assert.Equal(t, []string{"a", "b"}, s.Snapshot().Overlays)

	s.RemoveOverlay(&a)
	assert.Equal(t, []string{"b"}, s.Snapshot().Overlays)

	s.RemoveOverlay(&a)
	assert.Equal(t, []string{"b"}, s.Snapshot().Overlays)
}

func TestSessionFitViewport(t *testing.T) {
	s := NewSession(logger.NewNoOp())

	snap := s.Snapshot()
	assert.Equal(t, DefaultCenter, snap.Center)
	assert.Equal(t, DefaultZoom, snap.Zoom)
	assert.Nil(t, snap.Viewport)

	r, err := tilecoord.ProjectBounds("100.0,13.0,101.0,14.0")
	require.NoError(t, err)
	s.FitViewport(r)

	snap = s.Snapshot()
	require.NotNil(t, snap.Viewport)
	assert.Equal(t, r, *snap.Viewport)
	assert.Equal(t, tilecoord.LatLng{Lat: 13.5, Lon: 100.5}, snap.Center)
	assert.Equal(t, 8, snap.Zoom)
}

func TestFitZoom(t *testing.T) {
	world := tilecoord.Rectangle{
		SouthWest: tilecoord.LatLng{Lat: -85, Lon: -180},
		NorthEast: tilecoord.LatLng{Lat: 85, Lon: 180},
	}
	assert.Equal(t, 0, fitZoom(world))

	point := tilecoord.Rectangle{
		SouthWest: tilecoord.LatLng{Lat: 13, Lon: 100},
		NorthEast: tilecoord.LatLng{Lat: 13, Lon: 100},
	}
	assert.Equal(t, 22, fitZoom(point))
}
