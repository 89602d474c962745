package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1/dto"
	"github.com/jaennil/guide_helper/raster/internal/usecase"
)

const defaultContentType = "application/octet-stream"

func (h *Handler) ListLayers(c *gin.Context) {
	l := requestLogger(c)

	layers, err := h.layerUseCase.List(c.Request.Context())
	if err != nil {
		l.Error("failed to list layers", "error", err)
		h.RespondWithInternalServerError(c)
		return
	}

	h.RespondWithJSON(c, http.StatusOK, "got layers", dto.LayersResponse(layers))
}

func (h *Handler) CreateLayer(c *gin.Context) {
	l := requestLogger(c)

	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	var req dto.CreateLayerRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.RespondWithJSON(c, http.StatusRequestEntityTooLarge, "upload exceeds size limit", nil)
			return
		}
		l.Warn("failed to decode upload", "error", err)
		h.RespondWithJSON(c, http.StatusBadRequest, ErrFailedToDecodeRequestBody.Error(), nil)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.RespondWithJSON(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		h.RespondWithJSON(c, http.StatusBadRequest, ErrMissingFile.Error(), nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		l.Error("failed to open uploaded file", "error", err)
		h.RespondWithInternalServerError(c)
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	layer, err := h.layerUseCase.Create(c.Request.Context(), usecase.Upload{
		Name:        req.Name,
		Filename:    fh.Filename,
		Bounds:      req.Bounds,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		if code := statusFor(err); code != http.StatusInternalServerError {
			h.RespondWithJSON(c, code, err.Error(), nil)
			return
		}
		l.Error("failed to create layer", "filename", fh.Filename, "error", err)
		h.RespondWithInternalServerError(c)
		return
	}

	h.RespondWithJSON(c, http.StatusCreated, "layer uploaded", dto.CreateLayerResponse{
		ID:   layer.ID,
		Path: layer.Path,
	})
}

func (h *Handler) DeleteLayer(c *gin.Context) {
	l := requestLogger(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.RespondWithJSON(c, http.StatusBadRequest, ErrInvalidLayerID.Error(), nil)
		return
	}

	if err := h.layerUseCase.Delete(c.Request.Context(), id); err != nil {
		if code := statusFor(err); code != http.StatusInternalServerError {
			h.RespondWithJSON(c, code, err.Error(), nil)
			return
		}
		l.Error("failed to delete layer", "layer_id", id, "error", err)
		h.RespondWithInternalServerError(c)
		return
	}

	h.RespondWithJSON(c, http.StatusOK, "layer deleted", nil)
}
