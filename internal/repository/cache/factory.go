package cache

import (
	"fmt"

	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

// New creates the tile cache selected by cfg.Type.
func New(cfg config.Cache, redisCfg config.Redis, l logger.Logger) (TileCache, error) {
	switch cfg.Type {
	case "memory":
		l.Info("using memory tile cache")
		return NewMapCache(), nil
	case "sqlite":
		return NewSQLiteCache(cfg.SQLitePath, l)
	case "redis":
		l.Info("using redis tile cache", "addr", redisCfg.Addr, "ttl", redisCfg.TTL)
		return NewRedisCache(RedisConfig{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
			TTL:      redisCfg.TTL,
		})
	case "file":
		l.Info("using file tile cache", "dir", cfg.FileDir)
		return NewFilesystemCache(cfg.FileDir)
	case "disabled":
		l.Info("tile cache disabled")
		return NoopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s (supported: memory, sqlite, redis, file, disabled)", cfg.Type)
	}
}
