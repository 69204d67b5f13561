package main

import (
	// standard library
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// third-party
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	// internal
	"github.com/rmitchellscott/orangesnap/internal/cli"
	"github.com/rmitchellscott/orangesnap/internal/config"
	"github.com/rmitchellscott/orangesnap/internal/database"
	"github.com/rmitchellscott/orangesnap/internal/extraction"
	"github.com/rmitchellscott/orangesnap/internal/handlers"
	"github.com/rmitchellscott/orangesnap/internal/logging"
	"github.com/rmitchellscott/orangesnap/internal/middleware"
	"github.com/rmitchellscott/orangesnap/internal/presets"
	"github.com/rmitchellscott/orangesnap/internal/version"
)

func main() {
	_ = godotenv.Load()
	logging.SetOutput(os.Stderr, config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "text"))

	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "--version", "-v", "version":
		fmt.Println(version.String())
	case "render":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := cli.NewCommand().Run(ctx, args); err != nil {
			if cli.IsUsage(err) {
				return
			}
			logging.ErrorWithComponent(logging.ComponentRender, "Render failed", "error", err)
			stop()
			os.Exit(1)
		}
	case "serve":
		serve()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\nUsage: orangesnap [serve|render|--version]\n", cmd)
		os.Exit(2)
	}
}

func serve() {
	logging.InfoWithComponent(logging.ComponentStartup, "Starting "+version.Name, "version", version.String())

	var palettes *database.PaletteService
	if err := database.Initialize(); err != nil {
		if !errors.Is(err, database.ErrDisabled) {
			logging.ErrorWithComponent(logging.ComponentStartup, "Failed to initialize database", "error", err)
			os.Exit(1)
		}
		logging.InfoWithComponent(logging.ComponentStartup, "Palette history disabled")
	} else {
		defer database.Close()
		palettes = database.NewPaletteService(database.DB)
	}

	extractor, err := extraction.NewExtractor(extraction.ConfigFromEnv())
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentStartup, "Failed to configure color extraction", "error", err)
		os.Exit(1)
	}
	if err := extractor.Check(); err != nil {
		logging.WarnWithComponent(logging.ComponentStartup, "Color extraction will fail until configured", "error", err)
	}

	custom := presets.NewCustomPalette(config.GetInt("CUSTOM_PRESET_LIMIT", 32))
	var recorder extraction.Recorder
	if palettes != nil {
		recorder = palettes
	}
	service := extraction.NewService(extractor, custom, recorder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewExtractRateLimiter()
	limiter.StartCleanup(ctx, 5*time.Minute)

	// Set Gin mode
	if mode := config.Get("GIN_MODE", ""); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// The browser UI may be served from another origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		handlers.ExtractionTypeHeader,
	}
	router.Use(cors.New(corsConfig))

	handlers.RegisterRoutes(router, handlers.Deps{
		Extraction:     service,
		Custom:         custom,
		Palettes:       palettes,
		Limiter:        limiter,
		MaxUploadBytes: middleware.MaxUploadBytes(),
	})

	addr := ":" + config.Get("PORT", "8000")
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logging.InfoWithComponent(logging.ComponentStartup, "Listening", "address", addr, "extractor", service.Mode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorWithComponent(logging.ComponentStartup, "Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.InfoWithComponent(logging.ComponentShutdown, "Shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorWithComponent(logging.ComponentShutdown, "Server forced to shutdown", "error", err)
		return
	}
	logging.InfoWithComponent(logging.ComponentShutdown, "Server stopped")
}
