package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmitchellscott/orangesnap/internal/database"
	"github.com/rmitchellscott/orangesnap/internal/logging"
)

// PaletteHandler exposes the palette history. A nil service means history
// is disabled.
type PaletteHandler struct {
	palettes *database.PaletteService
}

// NewPaletteHandler creates a new palette handler
func NewPaletteHandler(palettes *database.PaletteService) *PaletteHandler {
	return &PaletteHandler{palettes: palettes}
}

func (h *PaletteHandler) available(c *gin.Context) bool {
	if h.palettes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": database.ErrDisabled.Error()})
		return false
	}
	return true
}

// ListPalettes handles GET /api/palettes?limit=N
func (h *PaletteHandler) ListPalettes(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	palettes, err := h.palettes.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentDatabase, "Failed to list palettes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list palettes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"palettes": palettes})
}

// GetPalette handles GET /api/palettes/:id
func (h *PaletteHandler) GetPalette(c *gin.Context) {
	if !h.available(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid palette ID"})
		return
	}

	palette, err := h.palettes.Get(c.Request.Context(), id)
	if errors.Is(err, database.ErrPaletteNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Palette not found"})
		return
	}
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentDatabase, "Failed to load palette", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load palette"})
		return
	}
	c.JSON(http.StatusOK, palette)
}
