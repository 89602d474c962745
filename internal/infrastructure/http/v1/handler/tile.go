package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jaennil/guide_helper/raster/internal/infrastructure/http/v1/dto"
	"github.com/jaennil/guide_helper/raster/internal/repository/archive"
	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
)

const (
	legacyMissingParameters = "Missing parameters"
	legacyInvalidParameters = "Invalid parameters"
	legacyTileNotFound      = "Tile not found"
	legacyDatabaseError     = "Database Error"
)

// Tile serves /api/v1/tile/:z/:x/:y with y counted from the top (XYZ).
func (h *Handler) Tile(c *gin.Context) {
	l := requestLogger(c)

	coord, field, err := parseXYZ(c.Param("z"), c.Param("x"), c.Param("y"))
	if err != nil {
		l.Warn("invalid tile parameter", "param", field, "error", err)
		h.RespondWithJSON(c, http.StatusBadRequest, field+" should be integer", nil)
		return
	}

	data, err := h.tileUseCase.GetTile(c.Request.Context(), coord)
	if err != nil {
		code := statusFor(err)
		switch code {
		case http.StatusInternalServerError:
			l.Error("failed to get tile", "tile", coord.String(), "error", err)
			h.RespondWithInternalServerError(c)
		default:
			l.Debug("tile request rejected", "tile", coord.String(), "error", err)
			h.RespondWithJSON(c, code, err.Error(), nil)
		}
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

func (h *Handler) Metadata(c *gin.Context) {
	l := requestLogger(c)

	md, err := h.tileUseCase.Metadata(c.Request.Context())
	if err != nil {
		l.Error("failed to read archive metadata", "error", err)
		h.RespondWithInternalServerError(c)
		return
	}

	h.RespondWithJSON(c, http.StatusOK, "got metadata", md)
}

// LegacyTile answers the index.php query-string API:
// ?z=&x=&y= for tiles and ?metadata for the archive bounds.
func (h *Handler) LegacyTile(c *gin.Context) {
	l := requestLogger(c)

	if _, ok := c.GetQuery("metadata"); ok {
		md, err := h.tileUseCase.Metadata(c.Request.Context())
		if err != nil {
			l.Error("failed to read archive metadata", "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, md)
		return
	}

	z, zok := c.GetQuery("z")
	x, xok := c.GetQuery("x")
	y, yok := c.GetQuery("y")
	if !zok || !xok || !yok {
		c.String(http.StatusBadRequest, legacyMissingParameters)
		return
	}

	coord, field, err := parseXYZ(z, x, y)
	if err != nil {
		l.Warn("invalid tile parameter", "param", field, "error", err)
		c.String(http.StatusBadRequest, legacyInvalidParameters)
		return
	}

	data, err := h.tileUseCase.GetTile(c.Request.Context(), coord)
	switch {
	case err == nil:
		c.Data(http.StatusOK, "image/png", data)
	case errors.Is(err, tilecoord.ErrInvalidCoordinate):
		c.String(http.StatusBadRequest, legacyInvalidParameters)
	case errors.Is(err, archive.ErrTileNotFound):
		c.String(http.StatusNotFound, legacyTileNotFound)
	default:
		l.Error("failed to get tile", "tile", coord.String(), "error", err)
		c.String(http.StatusInternalServerError, legacyDatabaseError)
	}
}

func parseXYZ(strZ, strX, strY string) (tilecoord.XYZ, string, error) {
	z, err := strconv.Atoi(strZ)
	if err != nil {
		return tilecoord.XYZ{}, "z", err
	}

	x, err := strconv.Atoi(strX)
	if err != nil {
		return tilecoord.XYZ{}, "x", err
	}

	y, err := strconv.Atoi(strY)
	if err != nil {
		return tilecoord.XYZ{}, "y", err
	}

	return tilecoord.XYZ{Z: z, X: x, Y: y}, "", nil
}
