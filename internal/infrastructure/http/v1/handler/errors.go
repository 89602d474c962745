package handler

import (
	"errors"
	"net/http"

	"github.com/jaennil/guide_helper/raster/internal/repository/archive"
	"github.com/jaennil/guide_helper/raster/internal/repository/layer"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
)

var (
	ErrFailedToDecodeRequestBody = errors.New("failed to decode request body")
	ErrMissingFile               = errors.New("multipart field \"file\" is required")
	ErrInvalidLayerID            = errors.New("layer id should be integer")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tilecoord.ErrInvalidCoordinate),
		errors.Is(err, tilecoord.ErrMalformedMetadata):
		return http.StatusBadRequest
	case errors.Is(err, archive.ErrTileNotFound),
		errors.Is(err, layer.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
