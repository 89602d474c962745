package app

import (
	"context"

	"github.com/go-playground/validator/v10"
	v1 "github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1"
	"github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1/handler"
	"github.com/jaennil/guide_helper/raster/internal/repository/layer"
	"github.com/jaennil/guide_helper/raster/internal/repository/storage"
	"github.com/jaennil/guide_helper/raster/internal/usecase"
	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/jaennil/guide_helper/raster/pkg/http_server"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

func RunCatalog(cfg *config.Config) {
	l := logger.NewZapLogger(cfg.Logger)
	defer l.Sync()

	l.Info("starting catalog service", "storage", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)

	serviceName := cfg.Telemetry.ServiceName + "-catalog"
	defer initTelemetry(cfg.Telemetry, serviceName, l)()

	ctx := logger.WithLogger(context.Background(), l)

	store, closeStore := newLayerStore(ctx, cfg.DB, l)
	defer closeStore()

	objects, err := storage.NewMinioStorage(cfg.Storage, l)
	if err != nil {
		l.Fatal("failed to initialize object storage", "error", err)
	}

	bucketCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.Timeout)
	if err := objects.EnsureBucket(bucketCtx); err != nil {
		// Uploads fail until the bucket is reachable; listing still works.
		l.Error("failed to ensure bucket", "bucket", cfg.Storage.Bucket, "error", err)
	}
	cancel()

	layerUseCase := usecase.NewLayerUseCase(store, objects, l)

	h := handler.NewHandler(validator.New(), handler.WithLayerUseCase(layerUseCase, cfg.HTTP.Server.MaxUploadSize))
	router := v1.NewCatalogRouter(h, l, v1.RouterOptions{
		ServiceName:      serviceName,
		TelemetryEnabled: cfg.Telemetry.Enabled,
	})

	serve(http_server.NewServer(ctx, cfg.HTTP.Server, router), l)

	l.Info("catalog service shutdown completed")
}

func newLayerStore(ctx context.Context, cfg config.DB, l logger.Logger) (layer.Store, func()) {
	if cfg.DSN == "" {
		l.Warn("DB_DSN is empty, layers are kept in memory")
		return layer.NewMemoryStore(), func() {}
	}

	store, err := layer.NewPostgresStore(ctx, cfg, l)
	if err != nil {
		l.Fatal("failed to initialize layer store", "error", err)
	}
	return store, store.Close
}
