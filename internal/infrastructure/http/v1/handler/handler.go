package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jaennil/guide_helper/raster/internal/usecase"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

const (
	internalServerErrorText = "the server encountered an error and could not process your request"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type Handler struct {
	validate      *validator.Validate
	tileUseCase   *usecase.TileUseCase
	layerUseCase  *usecase.LayerUseCase
	maxUploadSize int64
}

type Option func(*Handler)

func WithTileUseCase(uc *usecase.TileUseCase) Option {
	return func(h *Handler) { h.tileUseCase = uc }
}

func WithLayerUseCase(uc *usecase.LayerUseCase, maxUploadSize int64) Option {
	return func(h *Handler) {
		h.layerUseCase = uc
		h.maxUploadSize = maxUploadSize
	}
}

func NewHandler(v *validator.Validate, opts ...Option) *Handler {
	h := &Handler{
		validate: v,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RespondWithInternalServerError(c *gin.Context) {
	h.RespondWithJSON(c, http.StatusInternalServerError, internalServerErrorText, nil)
}

func (h *Handler) RespondWithJSON(c *gin.Context, code int, message string, data any) {
	success := code < 400

	r := response{
		Success: success,
		Message: message,
		Data:    data,
	}

	c.JSON(code, r)
}

func requestLogger(c *gin.Context) logger.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(logger.Logger); ok {
			return l
		}
	}
	return logger.FromContext(c.Request.Context())
}
