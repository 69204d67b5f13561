package logging

// Component constants for structured logging
const (
	ComponentStartup    = "startup"
	ComponentShutdown   = "shutdown"
	ComponentDatabase   = "database"
	ComponentExtraction = "extraction"
	ComponentAPI        = "api"
	ComponentRender     = "render"
	ComponentWallpaper  = "wallpaper"
	ComponentCapture    = "capture"
	ComponentExport     = "export"
	ComponentPresets    = "presets"
)
