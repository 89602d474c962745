package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMBTiles creates a minimal MBTiles file with the given metadata and
// tiles keyed by TMS address.
func writeMBTiles(t *testing.T, metadata map[string]string, tiles map[tilecoord.TMS][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ortho.mbtiles")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE metadata (name TEXT, value TEXT);
	CREATE TABLE tiles (zoom_level INTEGER, tile_column INTEGER, tile_row INTEGER, tile_data BLOB);
	CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row);`)
	require.NoError(t, err)

	for name, value := range metadata {
		_, err = db.Exec(`INSERT INTO metadata (name, value) VALUES (?, ?)`, name, value)
		require.NoError(t, err)
	}
	for c, data := range tiles {
		_, err = db.Exec(`INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)`, c.Z, c.X, c.Y, data)
		require.NoError(t, err)
	}

	return path
}

func TestReadTile(t *testing.T) {
	path := writeMBTiles(t, nil, map[tilecoord.TMS][]byte{
		{Z: 3, X: 1, Y: 7}: []byte("png-bytes"),
		{Z: 3, X: 2, Y: 7}: {},
	})

	a, err := OpenMBTiles(path, logger.NewNoOp())
	require.NoError(t, err)
	defer a.Close()

	data, err := a.ReadTile(context.Background(), tilecoord.TMS{Z: 3, X: 1, Y: 7})
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = a.ReadTile(context.Background(), tilecoord.TMS{Z: 3, X: 1, Y: 0})
	assert.ErrorIs(t, err, ErrTileNotFound)

	_, err = a.ReadTile(context.Background(), tilecoord.TMS{Z: 3, X: 2, Y: 7})
	assert.ErrorIs(t, err, ErrTileNotFound, "empty blobs count as missing")
}

func TestMetadata(t *testing.T) {
	path := writeMBTiles(t, map[string]string{
		"bounds":  "100.0,13.0,101.0,14.0",
		"minzoom": "5",
		"maxzoom": "19",
		"format":  "png",
	}, nil)

	a, err := OpenMBTiles(path, logger.NewNoOp())
	require.NoError(t, err)
	defer a.Close()

	md, err := a.Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100.0,13.0,101.0,14.0", md.Bounds)
	require.NotNil(t, md.MinZoom)
	require.NotNil(t, md.MaxZoom)
	assert.Equal(t, 5, *md.MinZoom)
	assert.Equal(t, 19, *md.MaxZoom)
}

func TestMetadataWithoutZooms(t *testing.T) {
	path := writeMBTiles(t, map[string]string{
		"bounds":  "1,2,3,4",
		"maxzoom": "deep",
	}, nil)

	a, err := OpenMBTiles(path, logger.NewNoOp())
	require.NoError(t, err)
	defer a.Close()

	md, err := a.Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1,2,3,4", md.Bounds)
	assert.Nil(t, md.MinZoom)
	assert.Nil(t, md.MaxZoom)
}

func TestOpenMissingArchive(t *testing.T) {
	_, err := OpenMBTiles(filepath.Join(t.TempDir(), "missing.mbtiles"), logger.NewNoOp())
	assert.ErrorIs(t, err, ErrArchiveUnavailable)
}

func TestClosedArchiveIsUnavailable(t *testing.T) {
	path := writeMBTiles(t, nil, nil)
	a, err := OpenMBTiles(path, logger.NewNoOp())
	require.NoError(t, err)
	require.NoError(t, a.Close())

	_, err = a.ReadTile(context.Background(), tilecoord.TMS{Z: 0, X: 0, Y: 0})
	assert.ErrorIs(t, err, ErrArchiveUnavailable)

	_, err = a.Metadata(context.Background())
	assert.ErrorIs(t, err, ErrArchiveUnavailable)
}
