package tilecoord

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Rectangle is a viewport given by its south-west and north-east corners.
type Rectangle struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// Corners returns [[lat, lon], [lat, lon]] for south-west and north-east, the
// order map widgets take for fitting.
func (r Rectangle) Corners() [2][2]float64 {
	return [2][2]float64{
		{r.SouthWest.Lat, r.SouthWest.Lon},
		{r.NorthEast.Lat, r.NorthEast.Lon},
	}
}

// Bound returns the rectangle in lon/lat order.
func (r Rectangle) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.SouthWest.Lon, r.SouthWest.Lat},
		Max: orb.Point{r.NorthEast.Lon, r.NorthEast.Lat},
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[%g,%g]-[%g,%g]", r.SouthWest.Lat, r.SouthWest.Lon, r.NorthEast.Lat, r.NorthEast.Lon)
}

// ProjectBounds parses "minLon,minLat,maxLon,maxLat" into a viewport rectangle.
func ProjectBounds(bounds string) (Rectangle, error) {
	parts := strings.Split(bounds, ",")
	if len(parts) != 4 {
		return Rectangle{}, fmt.Errorf("%w: bounds %q has %d values, want 4", ErrMalformedMetadata, bounds, len(parts))
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rectangle{}, fmt.Errorf("%w: bounds value %q: %v", ErrMalformedMetadata, p, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Rectangle{}, fmt.Errorf("%w: bounds value %q is not finite", ErrMalformedMetadata, p)
		}
		v[i] = f
	}

	minLon, minLat, maxLon, maxLat := v[0], v[1], v[2], v[3]
	if minLon > maxLon {
		return Rectangle{}, fmt.Errorf("%w: minLon %g > maxLon %g", ErrMalformedMetadata, minLon, maxLon)
	}
	if minLat > maxLat {
		return Rectangle{}, fmt.Errorf("%w: minLat %g > maxLat %g", ErrMalformedMetadata, minLat, maxLat)
	}

	return Rectangle{
		SouthWest: LatLng{Lat: minLat, Lon: minLon},
		NorthEast: LatLng{Lat: maxLat, Lon: maxLon},
	}, nil
}
