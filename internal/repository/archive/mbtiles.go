package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	_ "github.com/mattn/go-sqlite3"
)

type MBTiles struct {
	db     *sql.DB
	path   string
	logger logger.Logger
}

var _ Archive = (*MBTiles)(nil)

// OpenMBTiles opens an MBTiles file read-only.
func OpenMBTiles(path string, l logger.Logger) (*MBTiles, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveUnavailable, err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrArchiveUnavailable, err)
	}

	l.Info("mbtiles archive opened", "path", path)

	return &MBTiles{
		db:     db,
		path:   path,
		logger: l,
	}, nil
}

func (a *MBTiles) ReadTile(ctx context.Context, c tilecoord.TMS) ([]byte, error) {
	a.logger.Debug("mbtiles read", "z", c.Z, "x", c.X, "y", c.Y)

	query := `SELECT tile_data
	FROM tiles
	WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?`

	var tileData []byte
	err := a.db.QueryRowContext(ctx, query, c.Z, c.X, c.Y).Scan(&tileData)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTileNotFound
		}
		a.logger.Error("mbtiles read failed", "z", c.Z, "x", c.X, "y", c.Y, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrArchiveUnavailable, err)
	}

	if len(tileData) == 0 {
		return nil, ErrTileNotFound
	}

	return tileData, nil
}

func (a *MBTiles) Metadata(ctx context.Context) (Metadata, error) {
	query := `SELECT name, value
	FROM metadata
	WHERE name IN ('bounds', 'minzoom', 'maxzoom')`

	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		a.logger.Error("mbtiles metadata query failed", "error", err)
		return Metadata{}, fmt.Errorf("%w: %v", ErrArchiveUnavailable, err)
	}
	defer rows.Close()

	var md Metadata
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("%w: %v", ErrArchiveUnavailable, err)
		}

		switch name {
		case "bounds":
			md.Bounds = value
		case "minzoom":
			md.MinZoom = a.parseZoom(name, value)
		case "maxzoom":
			md.MaxZoom = a.parseZoom(name, value)
		}
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrArchiveUnavailable, err)
	}

	return md, nil
}

func (a *MBTiles) parseZoom(name, value string) *int {
	z, err := strconv.Atoi(value)
	if err != nil {
		a.logger.Warn("ignoring unparseable zoom in mbtiles metadata", "name", name, "value", value)
		return nil
	}
	return &z
}

func (a *MBTiles) Close() error {
	return a.db.Close()
}
