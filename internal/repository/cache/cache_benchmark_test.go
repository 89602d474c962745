package cache

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

const (
	smallTileSize  = 1024      // 1KB
	mediumTileSize = 10 * 1024 // 10KB
	largeTileSize  = 50 * 1024 // 50KB
)

func generateTileData(size int) []byte {
	data := make([]byte, size)
	rand.Read(data)
	return data
}

func benchKey(i int) TileCacheKey {
	return TileCacheKey{X: i % 100, Y: i % 100, Z: i % 20}
}

type benchCache struct {
	name  string
	setup func(b *testing.B) (TileCache, func())
}

var benchCaches = []benchCache{
	{"SQLite", func(b *testing.B) (TileCache, func()) {
		b.Helper()
		c, err := NewSQLiteCache(filepath.Join(b.TempDir(), "test.db"), logger.NewNoOp())
		if err != nil {
			b.Fatalf("Failed to create SQLite cache: %v", err)
		}
		return c, func() { c.Close() }
	}},
	{"Map", func(b *testing.B) (TileCache, func()) {
		b.Helper()
		return NewMapCache(), func() {}
	}},
	{"Filesystem", func(b *testing.B) (TileCache, func()) {
		b.Helper()
		c, err := NewFilesystemCache(b.TempDir())
		if err != nil {
			b.Fatalf("Failed to create filesystem cache: %v", err)
		}
		return c, func() {}
	}},
}

func BenchmarkSet(b *testing.B) {
	ctx := context.Background()
	for _, bc := range benchCaches {
		for _, size := range []int{smallTileSize, largeTileSize} {
			b.Run(bc.name+"/"+sizeName(size), func(b *testing.B) {
				c, cleanup := bc.setup(b)
				defer cleanup()
				data := generateTileData(size)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if err := c.Set(ctx, benchKey(i), data); err != nil {
						b.Fatalf("Set failed: %v", err)
					}
				}
			})
		}
	}
}

func BenchmarkGet(b *testing.B) {
	ctx := context.Background()
	for _, bc := range benchCaches {
		for _, size := range []int{smallTileSize, largeTileSize} {
			b.Run(bc.name+"/"+sizeName(size), func(b *testing.B) {
				c, cleanup := bc.setup(b)
				defer cleanup()
				data := generateTileData(size)

				for i := 0; i < 100; i++ {
					c.Set(ctx, benchKey(i), data)
				}

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, _, err := c.Get(ctx, benchKey(i)); err != nil {
						b.Fatalf("Get failed: %v", err)
					}
				}
			})
		}
	}
}

// 80% reads, 20% writes
func BenchmarkMixed(b *testing.B) {
	ctx := context.Background()
	for _, bc := range benchCaches {
		b.Run(bc.name, func(b *testing.B) {
			c, cleanup := bc.setup(b)
			defer cleanup()
			data := generateTileData(mediumTileSize)

			for i := 0; i < 50; i++ {
				c.Set(ctx, benchKey(i), data)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if i%5 == 0 {
					c.Set(ctx, benchKey(i), data)
				} else {
					c.Get(ctx, benchKey(i))
				}
			}
		})
	}
}

func BenchmarkConcurrent(b *testing.B) {
	ctx := context.Background()
	for _, bc := range benchCaches {
		b.Run(bc.name, func(b *testing.B) {
			c, cleanup := bc.setup(b)
			defer cleanup()
			data := generateTileData(mediumTileSize)

			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					if i%5 == 0 {
						c.Set(ctx, benchKey(i), data)
					} else {
						c.Get(ctx, benchKey(i))
					}
					i++
				}
			})
		})
	}
}

func sizeName(size int) string {
	if size >= largeTileSize {
		return "Large"
	}
	return "Small"
}
