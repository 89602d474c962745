package app

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	v1 "github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1"
	"github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1/handler"
	"github.com/jaennil/guide_helper/raster/internal/repository/archive"
	"github.com/jaennil/guide_helper/raster/internal/repository/cache"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/internal/usecase"
	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/jaennil/guide_helper/raster/pkg/http_server"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

func RunTiles(cfg *config.Config) {
	l := logger.NewZapLogger(cfg.Logger)
	defer l.Sync()

	l.Info("starting tiles service", "archive", cfg.Archive.Path, "cache", cfg.Cache.Type, "max_zoom", cfg.Archive.MaxZoom)

	serviceName := cfg.Telemetry.ServiceName + "-tiles"
	defer initTelemetry(cfg.Telemetry, serviceName, l)()

	tileArchive, err := archive.OpenMBTiles(cfg.Archive.Path, l)
	if err != nil {
		l.Fatal("failed to open tile archive", "path", cfg.Archive.Path, "error", err)
	}
	defer tileArchive.Close()

	tileCache, err := cache.New(cfg.Cache, cfg.Redis, l)
	if err != nil {
		l.Fatal("failed to initialize tile cache", "type", cfg.Cache.Type, "error", err)
	}
	if closer, ok := tileCache.(io.Closer); ok {
		defer closer.Close()
	}

	tileUseCase := usecase.NewTileUseCase(tileArchive, tileCache, tilecoord.NewTranslator(cfg.Archive.MaxZoom), l)

	h := handler.NewHandler(validator.New(), handler.WithTileUseCase(tileUseCase))
	router := v1.NewTilesRouter(h, l, v1.RouterOptions{
		ServiceName:      serviceName,
		TelemetryEnabled: cfg.Telemetry.Enabled,
	})

	ctx := logger.WithLogger(context.Background(), l)
	serve(http_server.NewServer(ctx, cfg.HTTP.Server, router), l)

	l.Info("tiles service shutdown completed")
}
