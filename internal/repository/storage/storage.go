package storage

import (
	"context"
	"io"
)

// ObjectStorage holds the raw raster bytes behind each catalog layer.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	// PublicURL is where map clients fetch the object from.
	PublicURL(key string) string
}
