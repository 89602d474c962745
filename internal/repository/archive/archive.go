package archive

import (
	"context"
	"errors"

	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
)

var (
	ErrTileNotFound       = errors.New("tile not found")
	ErrArchiveUnavailable = errors.New("tile archive unavailable")
)

// Metadata is the subset of the archive's metadata table served to map clients.
type Metadata struct {
	Bounds  string `json:"bounds"`
	MinZoom *int   `json:"minzoom,omitempty"`
	MaxZoom *int   `json:"maxzoom,omitempty"`
}

// Archive is a store of pre-rendered tiles addressed in TMS rows.
type Archive interface {
	ReadTile(ctx context.Context, c tilecoord.TMS) ([]byte, error)
	Metadata(ctx context.Context) (Metadata, error)
	Close() error
}
