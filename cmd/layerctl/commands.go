package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/jaennil/guide_helper/raster/internal/client/catalog"
	"github.com/jaennil/guide_helper/raster/internal/client/raster"
	"github.com/jaennil/guide_helper/raster/internal/mapview"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/paulmach/orb/maptile"
	"github.com/urfave/cli/v2"
)

func layersCommand() *cli.Command {
	return &cli.Command{
		Name:  "layers",
		Usage: "List the layers in the catalog",
		Action: func(c *cli.Context) error {
			layers, err := newCatalogClient(c, newLogger(c)).ListLayers(c.Context)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBOUNDS\tPATH")
			for _, l := range layers {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", l.ID, l.Name, l.Bounds, l.Path)
			}
			return w.Flush()
		},
	}
}

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload a raster file as a new layer",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Layer name, defaults to the file name"},
			&cli.StringFlag{Name: "bounds", Usage: "minLon,minLat,maxLon,maxLat"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("upload takes exactly one file", 2)
			}

			if b := c.String("bounds"); b != "" {
				if _, err := tilecoord.ProjectBounds(b); err != nil {
					return err
				}
			}

			path := c.Args().First()
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open raster: %w", err)
			}
			defer f.Close()

			created, err := newCatalogClient(c, newLogger(c)).CreateLayer(c.Context, catalog.Upload{
				Name:     c.String("name"),
				Bounds:   c.String("bounds"),
				Filename: filepath.Base(path),
				Body:     f,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "uploaded layer %d: %s\n", created.ID, created.Path)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a layer from the catalog",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil {
				return cli.Exit("layer id should be integer", 2)
			}

			if err := newCatalogClient(c, newLogger(c)).DeleteLayer(c.Context, id); err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "deleted layer %d\n", id)
			return nil
		},
	}
}

func tileCommand() *cli.Command {
	return &cli.Command{
		Name:      "tile",
		Usage:     "Show where an XYZ tile lives in the archive, optionally fetching it",
		ArgsUsage: "<z> <x> <y>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the tile to this file"},
		},
		Action: func(c *cli.Context) error {
			coord, err := parseTileArgs(c.Args().Slice())
			if err != nil {
				return err
			}

			tms, err := newTranslator(c).ToTMS(coord)
			if err != nil {
				return err
			}

			bound := maptile.New(uint32(coord.X), uint32(coord.Y), maptile.Zoom(coord.Z)).Bound()
			fmt.Fprintf(c.App.Writer, "%s -> %s\n", coord, tms)
			fmt.Fprintf(c.App.Writer, "bound: %.6f,%.6f,%.6f,%.6f\n", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())

			out := c.String("out")
			if out == "" {
				return nil
			}

			data, err := newTilesClient(c, newLogger(c)).Tile(c.Context, coord)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write tile: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "wrote %d bytes to %s\n", len(data), out)
			return nil
		},
	}
}

func parseTileArgs(args []string) (tilecoord.XYZ, error) {
	if len(args) != 3 {
		return tilecoord.XYZ{}, cli.Exit("tile takes <z> <x> <y>", 2)
	}

	var v [3]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return tilecoord.XYZ{}, fmt.Errorf("%w: %q is not an integer", tilecoord.ErrInvalidCoordinate, a)
		}
		v[i] = n
	}

	return tilecoord.XYZ{Z: v[0], X: v[1], Y: v[2]}, nil
}

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Show the tile archive's zoom range and the viewport a map would fit to",
		Action: func(c *cli.Context) error {
			l := newLogger(c)

			md, err := newTilesClient(c, l).Metadata(c.Context)
			if err != nil {
				return err
			}

			w := c.App.Writer
			fmt.Fprintf(w, "bounds: %s\n", md.Bounds)
			if md.MinZoom != nil {
				fmt.Fprintf(w, "minzoom: %d\n", *md.MinZoom)
			}
			if md.MaxZoom != nil {
				fmt.Fprintf(w, "maxzoom: %d\n", *md.MaxZoom)
			}

			rect, err := tilecoord.ProjectBounds(md.Bounds)
			if err != nil {
				if errors.Is(err, tilecoord.ErrMalformedMetadata) {
					fmt.Fprintf(w, "viewport: not fitted (%v)\n", err)
					return nil
				}
				return err
			}

			view := mapview.NewSession(l)
			view.FitViewport(rect)
			snap := view.Snapshot()
			fmt.Fprintf(w, "viewport: %s center=%.6f,%.6f zoom=%d\n", rect, snap.Center.Lat, snap.Center.Lon, snap.Zoom)
			return nil
		},
	}
}

func sessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Interactively toggle catalog layers on an in-process map",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  MAXBYTES,
				Usage: "Largest raster the session will download",
				Value: raster.DefaultMaxBytes,
			},
		},
		Action: func(c *cli.Context) error {
			l := newLogger(c)
			r := newREPL(newCatalogClient(c, l), newRasterLoader(c, l), c.App.Writer, l)
			return r.run(c.Context, os.Stdin)
		},
	}
}
