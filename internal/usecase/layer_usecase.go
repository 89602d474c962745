package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaennil/guide_helper/raster/internal/entity"
	"github.com/jaennil/guide_helper/raster/internal/repository/layer"
	"github.com/jaennil/guide_helper/raster/internal/repository/storage"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/jaennil/guide_helper/raster/pkg/metrics"
)

type Upload struct {
	Name        string
	Filename    string
	Bounds      string
	ContentType string
	Size        int64
	Body        io.Reader
}

type LayerUseCase struct {
	store   layer.Store
	storage storage.ObjectStorage
	logger  logger.Logger
	now     func() time.Time
}

func NewLayerUseCase(s layer.Store, objects storage.ObjectStorage, l logger.Logger) *LayerUseCase {
	return &LayerUseCase{
		store:   s,
		storage: objects,
		logger:  l,
		now:     time.Now,
	}
}

func (uc *LayerUseCase) List(ctx context.Context) ([]entity.Layer, error) {
	return uc.store.List(ctx)
}

// Create stores the raw raster and records it in the catalog. If the record
// cannot be written the stored object is removed again.
func (uc *LayerUseCase) Create(ctx context.Context, u Upload) (entity.Layer, error) {
	if u.Bounds != "" {
		if _, err := tilecoord.ProjectBounds(u.Bounds); err != nil {
			return entity.Layer{}, err
		}
	}

	filename := cleanFilename(u.Filename)
	name := strings.TrimSpace(u.Name)
	if name == "" {
		name = filename
	}

	key := fmt.Sprintf("%s-%d-%s", uuid.NewString(), uc.now().UnixMilli(), filename)
	if err := uc.storage.Put(ctx, key, u.Body, u.Size, u.ContentType); err != nil {
		uc.logger.Error("failed to store raster", "key", key, "error", err)
		return entity.Layer{}, err
	}

	l, err := uc.store.Create(ctx, layer.NewLayer{
		Name:      name,
		Path:      uc.storage.PublicURL(key),
		Bounds:    u.Bounds,
		ObjectKey: key,
	})
	if err != nil {
		if rmErr := uc.storage.Remove(ctx, key); rmErr != nil {
			metrics.OrphanedObjects.Inc()
			uc.logger.Warn("failed to remove raster after catalog insert failed", "key", key, "error", rmErr)
		}
		return entity.Layer{}, err
	}

	metrics.LayersUploaded.Inc()
	uc.logger.Info("layer uploaded", "layer_id", l.ID, "name", l.Name, "size", u.Size)

	return l, nil
}

// Delete removes the catalog record. Removing the raster object afterwards is
// best-effort: a failure leaves an orphaned object but still succeeds.
func (uc *LayerUseCase) Delete(ctx context.Context, id int64) error {
	l, err := uc.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.LayersDeleted.Inc()

	if err := uc.storage.Remove(ctx, l.ObjectKey); err != nil {
		metrics.OrphanedObjects.Inc()
		uc.logger.Warn("layer deleted but raster object was left behind", "layer_id", id, "key", l.ObjectKey, "error", err)
		return nil
	}

	uc.logger.Info("layer deleted", "layer_id", id, "name", l.Name)
	return nil
}

func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "raster"
	}
	return name
}
