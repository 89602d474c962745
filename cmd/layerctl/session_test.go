package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jaennil/guide_helper/raster/internal/client/catalog"
	"github.com/jaennil/guide_helper/raster/internal/entity"
	"github.com/jaennil/guide_helper/raster/internal/layercache"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	mu      sync.Mutex
	layers  []entity.Layer
	deleted []int64
}

func (c *fakeCatalog) ListLayers(context.Context) ([]entity.Layer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Layer(nil), c.layers...), nil
}

func (c *fakeCatalog) DeleteLayer(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.layers {
		if l.ID == id {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			c.deleted = append(c.deleted, id)
			return nil
		}
	}
	return catalog.ErrNotFound
}

type fakeHandle struct {
	layer entity.Layer
}

func (h *fakeHandle) Bounds() (tilecoord.Rectangle, error) { return tilecoord.ProjectBounds(h.layer.Bounds) }
func (h *fakeHandle) String() string { return fmt.Sprintf("%d:%s", h.layer.ID, h.layer.Name) }

type fakeLoader struct{}

func (fakeLoader) Load(_ context.Context, l entity.Layer) (layercache.Handle, error) {
	if l.Path == "" {
		return nil, errors.New("no path")
	}
	return &fakeHandle{layer: l}, nil
}

func runScript(t *testing.T, cat *fakeCatalog, script ...string) string {
	t.Helper()

	var out bytes.Buffer
	r := newREPL(cat, fakeLoader{}, &out, logger.NewNoOp())
	require.NoError(t, r.run(context.Background(), strings.NewReader(strings.Join(script, "\n")+"\n")))
	return out.String()
}

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{layers: []entity.Layer{
		{ID: 7, Name: "Broken", Bounds: "1,2,3,4"},
		{ID: 42, Name: "Ortho", Path: "http://minio/rasters/ortho.tif", Bounds: "100.1,13.5,100.9,14.0"},
	}}
}

func TestSessionToggleShowsAndHides(t *testing.T) {
	out := runScript(t, sampleCatalog(),
		"toggle 42",
		"wait",
		"state",
		"list",
		"toggle 42",
		"state",
		"quit",
	)

	assert.Contains(t, out, "2 layers in catalog")
	assert.Contains(t, out, "layer 42: loading")
	assert.Contains(t, out, "overlays: [42:Ortho]")
	assert.Contains(t, out, "viewport: [13.5,100.1]-[14,100.9]")
	assert.Contains(t, out, "42\tOrtho\tvisible")
	assert.Contains(t, out, "7\tBroken\tidle")
	assert.Contains(t, out, "layer 42: hidden")
	assert.Contains(t, out, "overlays: []")
}

func TestSessionReportsLoadFailure(t *testing.T) {
	out := runScript(t, sampleCatalog(), "toggle 7", "wait", "list")

	assert.Contains(t, out, "! layer load failed: layer 7 (Broken): no path")
	assert.Contains(t, out, "7\tBroken\tidle")
}

func TestSessionDeleteEvicts(t *testing.T) {
	cat := sampleCatalog()
	out := runScript(t, cat,
		"toggle 42",
		"wait",
		"delete 42",
		"state",
		"toggle 42",
	)

	assert.Contains(t, out, "layer 42 deleted")
	assert.Contains(t, out, "overlays: []")
	assert.Contains(t, out, "unknown layer 42")
	assert.Equal(t, []int64{42}, cat.deleted)
}

func TestSessionRejectsBadInput(t *testing.T) {
	out := runScript(t, sampleCatalog(), "toggle", "toggle abc", "zoom 3")

	assert.Contains(t, out, "expected one layer id")
	assert.Contains(t, out, "layer id should be integer")
	assert.Contains(t, out, `unknown command "zoom"`)
}
