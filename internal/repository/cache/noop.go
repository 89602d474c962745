package cache

import "context"

type NoopCache struct{}

var _ TileCache = NoopCache{}

func (NoopCache) Get(context.Context, TileCacheKey) (TileCacheValue, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(context.Context, TileCacheKey, TileCacheValue) error {
	return nil
}
