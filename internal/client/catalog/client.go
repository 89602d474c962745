package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jaennil/guide_helper/raster/internal/entity"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

var ErrNotFound = errors.New("layer not found")

// APIError is a non-2xx answer from the catalog service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog returned status %d: %s", e.Status, e.Message)
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Created struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

type Upload struct {
	Name     string
	Bounds   string
	Filename string
	Body     io.Reader
}

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

func (c *Client) ListLayers(ctx context.Context) ([]entity.Layer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/layers", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var layers []entity.Layer
	if err := c.do(req, &layers); err != nil {
		return nil, err
	}
	return layers, nil
}

// CreateLayer streams the upload as multipart/form-data.
func (c *Client) CreateLayer(ctx context.Context, u Upload) (Created, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUpload(mw, u))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/layers", pr)
	if err != nil {
		pr.Close()
		return Created{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var created Created
	if err := c.do(req, &created); err != nil {
		pr.Close()
		return Created{}, err
	}

	c.logger.Info("layer uploaded", "layer_id", created.ID, "path", created.Path)
	return created, nil
}

func writeUpload(mw *multipart.Writer, u Upload) error {
	if u.Name != "" {
		if err := mw.WriteField("name", u.Name); err != nil {
			return err
		}
	}
	if u.Bounds != "" {
		if err := mw.WriteField("bounds", u.Bounds); err != nil {
			return err
		}
	}

	fw, err := mw.CreateFormFile("file", u.Filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, u.Body); err != nil {
		return err
	}

	return mw.Close()
}

func (c *Client) DeleteLayer(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/api/v1/layers/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	c.logger.Debug("catalog request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach catalog: %w", err)
	}
	defer resp.Body.Close()

	var r response
	decodeErr := json.NewDecoder(resp.Body).Decode(&r)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, r.Message)
	}
	if resp.StatusCode >= 400 || !r.Success {
		return &APIError{Status: resp.StatusCode, Message: r.Message}
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode catalog response: %w", decodeErr)
	}

	if out == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("failed to decode catalog data: %w", err)
	}
	return nil
}
