package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	v1 "github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1"
	"github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1/handler"
	"github.com/jaennil/guide_helper/raster/internal/repository/archive"
	"github.com/jaennil/guide_helper/raster/internal/repository/cache"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/internal/usecase"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubArchive struct {
	tiles    map[tilecoord.TMS][]byte
	metadata archive.Metadata
	err      error
}

func (a *stubArchive) ReadTile(_ context.Context, c tilecoord.TMS) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	if data, ok := a.tiles[c]; ok {
		return data, nil
	}
	return nil, archive.ErrTileNotFound
}

func (a *stubArchive) Metadata(context.Context) (archive.Metadata, error) {
	if a.err != nil {
		return archive.Metadata{}, a.err
	}
	return a.metadata, nil
}

func (a *stubArchive) Close() error { return nil }

var tilePNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n'}

func newTilesRouter(a archive.Archive) http.Handler {
	uc := usecase.NewTileUseCase(a, cache.NoopCache{}, tilecoord.NewTranslator(25), logger.NewNoOp())
	h := handler.NewHandler(validator.New(), handler.WithTileUseCase(uc))
	return v1.NewTilesRouter(h, logger.NewNoOp(), v1.RouterOptions{ServiceName: "tiles-test"})
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func sampleArchive() *stubArchive {
	return &stubArchive{
		tiles: map[tilecoord.TMS][]byte{
			{Z: 12, X: 3190, Y: 2206}: tilePNG,
		},
		metadata: archive.Metadata{Bounds: "100.1,13.5,100.9,14.0"},
	}
}

func TestTile(t *testing.T) {
	r := newTilesRouter(sampleArchive())

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"found", "/api/v1/tile/12/3190/1889", http.StatusOK},
		{"not an integer", "/api/v1/tile/12/abc/1889", http.StatusBadRequest},
		{"row out of range", "/api/v1/tile/12/3190/4096", http.StatusBadRequest},
		{"zoom above max", "/api/v1/tile/26/0/0", http.StatusBadRequest},
		{"missing", "/api/v1/tile/12/3190/1890", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, tt.target)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.Equal(t, tilePNG, w.Body.Bytes())
			} else {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}

func TestTileArchiveUnavailable(t *testing.T) {
	r := newTilesRouter(&stubArchive{err: archive.ErrArchiveUnavailable})

	w := get(t, r, "/api/v1/tile/1/0/0")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetadata(t *testing.T) {
	r := newTilesRouter(sampleArchive())

	w := get(t, r, "/api/v1/metadata")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"got metadata","data":{"bounds":"100.1,13.5,100.9,14.0"}}`, w.Body.String())
}

func TestLegacyTile(t *testing.T) {
	r := newTilesRouter(sampleArchive())

	for _, path := range []string{"/index.php", "/"} {
		t.Run(path, func(t *testing.T) {
			w := get(t, r, path+"?z=12&x=3190&y=1889")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
			assert.Equal(t, tilePNG, w.Body.Bytes())

			w = get(t, r, path+"?z=12&x=3190")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing parameters", w.Body.String())

			w = get(t, r, path+"?z=12&x=3190&y=1890")
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Tile not found", w.Body.String())

			w = get(t, r, path+"?z=99&x=0&y=0")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLegacyMetadata(t *testing.T) {
	w := get(t, newTilesRouter(sampleArchive()), "/index.php?metadata=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bounds":"100.1,13.5,100.9,14.0"}`, w.Body.String())

	w = get(t, newTilesRouter(&stubArchive{err: archive.ErrArchiveUnavailable}), "/index.php?metadata")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestLegacyDatabaseError(t *testing.T) {
	w := get(t, newTilesRouter(&stubArchive{err: archive.ErrArchiveUnavailable}), "/index.php?z=1&x=0&y=0")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Database Error", w.Body.String())
}

func TestHealthzAndMetrics(t *testing.T) {
	r := newTilesRouter(sampleArchive())

	assert.Equal(t, http.StatusOK, get(t, r, "/api/v1/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, r, "/metrics").Code)
}
