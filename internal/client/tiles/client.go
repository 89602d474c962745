package tiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jaennil/guide_helper/raster/internal/repository/archive"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

type response struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    archive.Metadata `json:"data"`
}

// Client reads the versioned API of the tile server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func New(baseURL string, timeout time.Duration, l logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: l,
	}
}

func (c *Client) Metadata(ctx context.Context) (archive.Metadata, error) {
	resp, err := c.get(ctx, c.baseURL+"/api/v1/metadata")
	if err != nil {
		return archive.Metadata{}, err
	}
	defer resp.Body.Close()

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return archive.Metadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !r.Success {
		return archive.Metadata{}, fmt.Errorf("%w: tile server returned status %d: %s", archive.ErrArchiveUnavailable, resp.StatusCode, r.Message)
	}

	return r.Data, nil
}

// Tile fetches one tile addressed in XYZ rows. Status codes map back onto the
// archive and translator errors.
func (c *Client) Tile(ctx context.Context, t tilecoord.XYZ) ([]byte, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/api/v1/tile/%d/%d/%d", c.baseURL, t.Z, t.X, t.Y))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", tilecoord.ErrInvalidCoordinate, t)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", archive.ErrTileNotFound, t)
	default:
		return nil, fmt.Errorf("%w: tile server returned status %d", archive.ErrArchiveUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile: %w", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("tile server request", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach tile server: %w", err)
	}
	return resp, nil
}
