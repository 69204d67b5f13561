package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/orangesnap/internal/config"
	"github.com/rmitchellscott/orangesnap/internal/version"
)

// ConfigHandler returns application configuration for the frontend
func ConfigHandler(extractionMode string, historyEnabled bool, maxUploadBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"extractionMode":   extractionMode,
			"aiModel":          config.Get("AI_MODEL", "gemini-2.0-flash"),
			"historyEnabled":   historyEnabled,
			"maxUploadSizeMB":  maxUploadBytes >> 20,
			"serverSideRender": false,
		})
	}
}

// VersionHandler reports the build version.
func VersionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}

// HealthHandler is a liveness probe.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
