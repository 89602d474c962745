package main

import (
	"log"
	"os"
	"time"

	"github.com/jaennil/guide_helper/raster/internal/client/catalog"
	"github.com/jaennil/guide_helper/raster/internal/client/raster"
	"github.com/jaennil/guide_helper/raster/internal/client/tiles"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/urfave/cli/v2"
)

const (
	CATALOGURL = `catalog-url`
	TILESURL   = `tiles-url`
	TIMEOUT    = `timeout`
	LOGLEVEL   = `log-level`
	MAXZOOM    = `max-zoom`
	MAXBYTES   = `max-raster-bytes`
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "layerctl"
	app.Usage = "Manage raster layers and preview them on a map session"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    CATALOGURL,
			Usage:   "Base URL of the layer catalog service",
			Value:   "http://localhost:8081",
			EnvVars: []string{"CATALOG_URL"},
		},
		&cli.StringFlag{
			Name:    TILESURL,
			Usage:   "Base URL of the tile server",
			Value:   "http://localhost:8080",
			EnvVars: []string{"TILES_URL"},
		},
		&cli.DurationFlag{
			Name:    TIMEOUT,
			Usage:   "Timeout of a single HTTP request",
			Value:   30 * time.Second,
			EnvVars: []string{"LAYERCTL_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    LOGLEVEL,
			Usage:   "Log level: debug, info, warn, error",
			Value:   "warn",
			EnvVars: []string{"LOGGER_LEVEL"},
		},
		&cli.IntFlag{
			Name:    MAXZOOM,
			Usage:   "Deepest zoom level the tile server accepts",
			Value:   25,
			EnvVars: []string{"ARCHIVE_MAX_ZOOM"},
		},
	}

	app.Commands = []*cli.Command{
		layersCommand(),
		uploadCommand(),
		deleteCommand(),
		tileCommand(),
		archiveCommand(),
		sessionCommand(),
	}

	return app
}

func newLogger(c *cli.Context) logger.Logger {
	return logger.NewZapLogger(config.Logger{Level: c.String(LOGLEVEL), Encoding: "console"})
}

func newCatalogClient(c *cli.Context, l logger.Logger) *catalog.Client {
	return catalog.New(c.String(CATALOGURL), c.Duration(TIMEOUT), l)
}

func newTilesClient(c *cli.Context, l logger.Logger) *tiles.Client {
	return tiles.New(c.String(TILESURL), c.Duration(TIMEOUT), l)
}

func newRasterLoader(c *cli.Context, l logger.Logger) *raster.Loader {
	return raster.NewLoader(c.Duration(TIMEOUT), c.Int64(MAXBYTES), l)
}

func newTranslator(c *cli.Context) tilecoord.Translator {
	return tilecoord.NewTranslator(c.Int(MAXZOOM))
}
