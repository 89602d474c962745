package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCaches(t *testing.T) map[string]TileCache {
	t.Helper()

	sqliteCache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), logger.NewNoOp())
	require.NoError(t, err)
	t.Cleanup(func() { sqliteCache.Close() })

	fsCache, err := NewFilesystemCache(filepath.Join(t.TempDir(), "tiles"))
	require.NoError(t, err)

	return map[string]TileCache{
		"map":        NewMapCache(),
		"sqlite":     sqliteCache,
		"filesystem": fsCache,
	}
}

func TestTileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			key := KeyFor(tilecoord.TMS{Z: 12, X: 3190, Y: 2206})

			_, exists, err := c.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, exists)

			require.NoError(t, c.Set(ctx, key, TileCacheValue("first")))
			require.NoError(t, c.Set(ctx, key, TileCacheValue("second")))

			v, exists, err := c.Get(ctx, key)
			require.NoError(t, err)
			assert.True(t, exists)
			assert.Equal(t, TileCacheValue("second"), v)

			_, exists, err = c.Get(ctx, TileCacheKey{Z: 12, X: 3190, Y: 2207})
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var c TileCache = NoopCache{}

	require.NoError(t, c.Set(ctx, TileCacheKey{}, TileCacheValue("x")))
	_, exists, err := c.Get(ctx, TileCacheKey{})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFilesystemLayout(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFilesystemCache(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "4", "5", "6"), c.keyToPath(TileCacheKey{Z: 4, X: 5, Y: 6}))
}

func TestRedisKey(t *testing.T) {
	c := newRedisCache(redis.NewClient(&redis.Options{Addr: "localhost:0"}), 0)
	defer c.Close()

	assert.Equal(t, "tile:3:1:7", c.keyFor(TileCacheKey{Z: 3, X: 1, Y: 7}))
	assert.Greater(t, c.ttl.Hours(), 0.0)
}

func TestFactory(t *testing.T) {
	l := logger.NewNoOp()

	tests := []struct {
		typ  string
		want any
	}{
		{"memory", &MapCache{}},
		{"disabled", NoopCache{}},
		{"file", &FilesystemCache{}},
		{"sqlite", &SQLiteCache{}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			c, err := New(config.Cache{
				Type:       tt.typ,
				FileDir:    t.TempDir(),
				SQLitePath: filepath.Join(t.TempDir(), "cache.db"),
			}, config.Redis{}, l)
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}

	_, err := New(config.Cache{Type: "memcached"}, config.Redis{}, l)
	assert.ErrorContains(t, err, "unknown cache type")
}
