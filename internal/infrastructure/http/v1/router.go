package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1/handler"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/jaennil/guide_helper/raster/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	ServiceName      string
	TelemetryEnabled bool
}

func NewTilesRouter(h *handler.Handler, l logger.Logger, opts RouterOptions) *gin.Engine {
	r := newEngine(l, opts)

	// Query-string API kept for map clients built against index.php.
	r.GET("/", h.LegacyTile)
	r.GET("/index.php", h.LegacyTile)

	v1 := r.Group("/api").Group("/v1")
	v1.GET("/healthz", h.Healthz)
	v1.GET("/metadata", h.Metadata)
	v1.GET("/tile/:z/:x/:y", h.Tile)

	return r
}

func NewCatalogRouter(h *handler.Handler, l logger.Logger, opts RouterOptions) *gin.Engine {
	r := newEngine(l, opts)

	v1 := r.Group("/api").Group("/v1")
	v1.GET("/healthz", h.Healthz)
	v1.GET("/layers", h.ListLayers)
	v1.POST("/layers", h.CreateLayer)
	v1.DELETE("/layers/:id", h.DeleteLayer)

	return r
}

func newEngine(l logger.Logger, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())

	if opts.TelemetryEnabled {
		r.Use(telemetry.GinMiddleware(opts.ServiceName))
	}

	r.Use(ginZapLogger(l))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func ginZapLogger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("logger", l)

		start := time.Now()

		c.Next()

		latency := time.Since(start)

		l.Info("request",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"latency", latency,
			"size", c.Writer.Size(),
		)
	}
}
