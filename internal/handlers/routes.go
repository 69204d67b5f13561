package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/orangesnap/internal/database"
	"github.com/rmitchellscott/orangesnap/internal/extraction"
	"github.com/rmitchellscott/orangesnap/internal/middleware"
	"github.com/rmitchellscott/orangesnap/internal/presets"
)

// Deps are the collaborators the API routes need. Palettes may be nil.
type Deps struct {
	Extraction     *extraction.Service
	Custom         *presets.CustomPalette
	Palettes       *database.PaletteService
	Limiter        *middleware.IPRateLimiter
	MaxUploadBytes int64
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r *gin.Engine, d Deps) {
	extract := NewExtractHandler(d.Extraction)
	presetH := NewPresetHandler(d.Custom)
	paletteH := NewPaletteHandler(d.Palettes)

	r.GET("/healthz", HealthHandler)

	api := r.Group("/api")
	{
		api.GET("/config", ConfigHandler(d.Extraction.Mode(), d.Palettes != nil, d.MaxUploadBytes))
		api.GET("/version", VersionHandler)
		api.GET("/presets", presetH.GetPresets)
		api.GET("/palettes", paletteH.ListPalettes)
		api.GET("/palettes/:id", paletteH.GetPalette)

		handlers := []gin.HandlerFunc{}
		if d.Limiter != nil {
			handlers = append(handlers, d.Limiter.RateLimit())
		}
		if d.MaxUploadBytes > 0 {
			handlers = append(handlers, middleware.RequestSizeLimit(d.MaxUploadBytes))
		}
		handlers = append(handlers, extract.ExtractColors)
		api.POST("/extract-colors", handlers...)
	}
}
