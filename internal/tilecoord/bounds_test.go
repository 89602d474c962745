package tilecoord

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectBounds(t *testing.T) {
	r, err := ProjectBounds("100.0,13.0,101.0,14.0")
	require.NoError(t, err)

	assert.Equal(t, [2][2]float64{{13.0, 100.0}, {14.0, 101.0}}, r.Corners())
	assert.Equal(t, LatLng{Lat: 13, Lon: 100}, r.SouthWest)
	assert.Equal(t, LatLng{Lat: 14, Lon: 101}, r.NorthEast)
	assert.Equal(t, orb.Bound{Min: orb.Point{100, 13}, Max: orb.Point{101, 14}}, r.Bound())
}

func TestProjectBoundsToleratesSpaces(t *testing.T) {
	r, err := ProjectBounds(" -180, -85.0511 ,180,85.0511")
	require.NoError(t, err)
	assert.Equal(t, -180.0, r.SouthWest.Lon)
	assert.Equal(t, 85.0511, r.NorthEast.Lat)
}

func TestProjectBoundsDegenerateRectangle(t *testing.T) {
	r, err := ProjectBounds("100,13,100,13")
	require.NoError(t, err)
	assert.Equal(t, r.SouthWest, r.NorthEast)
}

func TestProjectBoundsMalformed(t *testing.T) {
	for _, in := range []string{
		"a,b,c",
		"",
		"1,2,3",
		"1,2,3,4,5",
		"100,13,x,14",
		"101,13,100,14",
		"100,14,101,13",
		"NaN,13,101,14",
		"100,13,+Inf,14",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ProjectBounds(in)
			assert.ErrorIs(t, err, ErrMalformedMetadata)
		})
	}
}
