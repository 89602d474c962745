package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TilesRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tiles_requests_total",
		Help: "Total number of tile requests by outcome",
	}, []string{"outcome"})

	TilesCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tiles_cache_hits_total",
		Help: "Total number of tile cache hits",
	})

	TilesCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tiles_cache_misses_total",
		Help: "Total number of tile cache misses",
	})

	TilesCacheStores = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tiles_cache_stores_total",
		Help: "Total number of tile cache store operations",
	})

	ArchiveLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tiles_archive_latency_seconds",
		Help:    "Latency of tile archive lookups in seconds",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation"})

	RedisOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation"})

	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	}, []string{"operation"})

	LayersUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_layers_uploaded_total",
		Help: "Total number of uploaded raster layers",
	})

	LayersDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_layers_deleted_total",
		Help: "Total number of deleted raster layers",
	})

	OrphanedObjects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_orphaned_objects_total",
		Help: "Total number of raster objects left behind after a failed removal",
	})

	LayerLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layercache_loads_total",
		Help: "Total number of layer fetch and decode operations",
	})

	LayerLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layercache_load_failures_total",
		Help: "Total number of failed layer fetch and decode operations",
	})

	LayerStaleCompletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layercache_stale_completions_total",
		Help: "Total number of layer loads that completed after their layer was evicted",
	})
)
