package dto

import "github.com/jaennil/guide_helper/raster/internal/entity"

// CreateLayerRequest holds the non-file fields of the multipart upload.
type CreateLayerRequest struct {
	Name   string `form:"name" validate:"max=255"`
	Bounds string `form:"bounds" validate:"max=255"`
}

type CreateLayerResponse struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

type LayersResponse []entity.Layer
