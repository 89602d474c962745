package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jaennil/guide_helper/raster/internal/repository/archive"
	"github.com/jaennil/guide_helper/raster/internal/repository/cache"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/jaennil/guide_helper/raster/pkg/metrics"
	"github.com/jaennil/guide_helper/raster/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type TileUseCase struct {
	archive    archive.Archive
	cache      cache.TileCache
	translator tilecoord.Translator
	logger     logger.Logger
}

func NewTileUseCase(a archive.Archive, c cache.TileCache, t tilecoord.Translator, l logger.Logger) *TileUseCase {
	return &TileUseCase{
		archive:    a,
		cache:      c,
		translator: t,
		logger:     l,
	}
}

// GetTile returns the tile a web map client asked for in XYZ rows. Failures
// match tilecoord.ErrInvalidCoordinate, archive.ErrTileNotFound or
// archive.ErrArchiveUnavailable.
func (uc *TileUseCase) GetTile(ctx context.Context, c tilecoord.XYZ) ([]byte, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "TileUseCase.GetTile", trace.WithAttributes(
		attribute.Int("tile.z", c.Z),
		attribute.Int("tile.x", c.X),
		attribute.Int("tile.y", c.Y),
	))
	defer span.End()

	tms, err := uc.translator.ToTMS(c)
	if err != nil {
		metrics.TilesRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}
	span.SetAttributes(attribute.Int("tile.tms_y", tms.Y))

	key := cache.KeyFor(tms)
	data, exists, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("failed to check tile cache, reading archive", "tile", tms.String(), "error", err)
	} else if exists {
		metrics.TilesCacheHits.Inc()
		metrics.TilesRequests.WithLabelValues("hit").Inc()
		uc.logger.Debug("tile cache hit", "tile", tms.String(), "size", len(data))
		return data, nil
	}
	metrics.TilesCacheMisses.Inc()

	start := time.Now()
	data, err = uc.archive.ReadTile(ctx, tms)
	metrics.ArchiveLatency.WithLabelValues("read_tile").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, archive.ErrTileNotFound) {
			metrics.TilesRequests.WithLabelValues("not_found").Inc()
		} else {
			metrics.TilesRequests.WithLabelValues("error").Inc()
			span.RecordError(err)
		}
		return nil, err
	}
	metrics.TilesRequests.WithLabelValues("miss").Inc()

	if err := uc.cache.Set(ctx, key, data); err != nil {
		uc.logger.Warn("failed to store tile in cache", "tile", tms.String(), "error", err)
	} else {
		metrics.TilesCacheStores.Inc()
	}

	return data, nil
}

func (uc *TileUseCase) Metadata(ctx context.Context) (archive.Metadata, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "TileUseCase.Metadata")
	defer span.End()

	start := time.Now()
	md, err := uc.archive.Metadata(ctx)
	metrics.ArchiveLatency.WithLabelValues("metadata").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return archive.Metadata{}, err
	}

	if _, err := tilecoord.ProjectBounds(md.Bounds); err != nil {
		uc.logger.Warn("archive bounds are malformed, clients will not fit the viewport", "bounds", md.Bounds, "error", err)
	}

	return md, nil
}
