// Package raster fetches uploaded rasters and decodes them into map overlay
// handles.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jaennil/guide_helper/raster/internal/entity"
	"github.com/jaennil/guide_helper/raster/internal/layercache"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	_ "golang.org/x/image/tiff"
)

const DefaultMaxBytes = 512 << 20

var ErrTooLarge = errors.New("raster exceeds size limit")

type Handle struct {
	layer  entity.Layer
	format string
	size   image.Point

	mu  sync.RWMutex
	img image.Image
}

var _ layercache.Handle = (*Handle)(nil)

func (h *Handle) Bounds() (tilecoord.Rectangle, error) {
	return tilecoord.ProjectBounds(h.layer.Bounds)
}

func (h *Handle) Layer() entity.Layer { return h.layer }
func (h *Handle) Format() string      { return h.format }
func (h *Handle) Size() image.Point   { return h.size }

// Image returns the decoded pixels, or nil once the handle is closed.
func (h *Handle) Image() image.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.img
}

func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.img = nil
	return nil
}

func (h *Handle) String() string {
	return fmt.Sprintf("%d:%s", h.layer.ID, h.layer.Name)
}

type Loader struct {
	httpClient *http.Client
	maxBytes   int64
	logger     logger.Logger
}

var _ layercache.Loader = (*Loader)(nil)

func NewLoader(timeout time.Duration, maxBytes int64, l logger.Logger) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBytes: maxBytes,
		logger:   l,
	}
}

func (ld *Loader) Load(ctx context.Context, layer entity.Layer) (layercache.Handle, error) {
	ld.logger.Debug("fetching raster", "layer_id", layer.ID, "path", layer.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, layer.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := ld.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("raster fetch returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, ld.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read raster: %w", err)
	}
	if int64(len(raw)) > ld.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, ld.maxBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode raster: %w", err)
	}

	ld.logger.Info("raster decoded",
		"layer_id", layer.ID,
		"format", format,
		"bytes", len(raw),
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"duration", time.Since(start),
	)

	return &Handle{
		layer:  layer,
		format: format,
		size:   img.Bounds().Size(),
		img:    img,
	}, nil
}
