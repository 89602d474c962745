package layer

import (
	"context"
	"errors"

	"github.com/jaennil/guide_helper/raster/internal/entity"
)

var ErrNotFound = errors.New("layer not found")

// NewLayer is what the catalog knows about a layer before it has an id.
type NewLayer struct {
	Name      string
	Path      string
	Bounds    string
	ObjectKey string
}

type Store interface {
	// List returns all layers ordered by id.
	List(ctx context.Context) ([]entity.Layer, error)
	Get(ctx context.Context, id int64) (entity.Layer, error)
	Create(ctx context.Context, l NewLayer) (entity.Layer, error)
	Delete(ctx context.Context, id int64) error
}
