package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/orangesnap/internal/compositor"
	"github.com/rmitchellscott/orangesnap/internal/presets"
)

// PresetHandler serves the built-in presets and the custom colors collected
// from extractions.
type PresetHandler struct {
	custom *presets.CustomPalette
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(custom *presets.CustomPalette) *PresetHandler {
	return &PresetHandler{custom: custom}
}

// GetPresets handles GET /api/presets
func (h *PresetHandler) GetPresets(c *gin.Context) {
	custom := gin.H{"colors": []string{}, "gradients": []presets.GradientPreset{}}
	if h.custom != nil {
		if colors := h.custom.Colors(); len(colors) > 0 {
			custom["colors"] = colors
		}
		if grads := h.custom.Gradients(); len(grads) > 0 {
			custom["gradients"] = grads
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"defaults":   compositor.DefaultSettings(),
		"solid":      presets.SolidColors(),
		"gradients":  presets.Gradients(),
		"patterns":   presets.Patterns(),
		"wallpapers": presets.Wallpapers(),
		"custom":     custom,
	})
}
