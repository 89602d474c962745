package cache

import (
	"context"

	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
)

// TileCacheKey addresses a cached tile in the archive's TMS rows.
type TileCacheKey struct {
	Z int
	X int
	Y int
}

func KeyFor(c tilecoord.TMS) TileCacheKey {
	return TileCacheKey{Z: c.Z, X: c.X, Y: c.Y}
}

type TileCacheValue []byte

type TileCache interface {
	Get(context.Context, TileCacheKey) (TileCacheValue, bool, error)
	Set(context.Context, TileCacheKey, TileCacheValue) error
}
