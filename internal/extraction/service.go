package extraction

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rmitchellscott/orangesnap/internal/config"
	"github.com/rmitchellscott/orangesnap/internal/logging"
	"github.com/rmitchellscott/orangesnap/internal/presets"
)

// Recorder persists successful extractions. The database palette service
// satisfies it.
type Recorder interface {
	Record(ctx context.Context, kind, source, model string, colors any) error
}

// Service wires an extractor to the custom preset list and palette history.
type Service struct {
	extractor Extractor
	custom    *presets.CustomPalette
	recorder  Recorder
}

// NewService builds a service. custom and recorder may be nil.
func NewService(extractor Extractor, custom *presets.CustomPalette, recorder Recorder) *Service {
	return &Service{extractor: extractor, custom: custom, recorder: recorder}
}

// Mode names the active extractor.
func (s *Service) Mode() string { return s.extractor.Name() }

// Check reports whether the service can serve requests at all.
func (s *Service) Check() error { return s.extractor.Check() }

// Extract runs the extractor and publishes a successful result. History
// failures are logged and do not fail the request.
func (s *Service) Extract(ctx context.Context, img Image, t Type) (Palette, error) {
	if err := s.extractor.Check(); err != nil {
		return Palette{}, err
	}
	if len(img.Data) == 0 {
		return Palette{}, ErrMissingImage
	}

	start := time.Now()
	p, err := s.extractor.Extract(ctx, img, t)
	if err != nil {
		return Palette{}, err
	}

	if s.custom != nil {
		if t == TypeGradient {
			pairs := make([]presets.GradientPreset, 0, len(p.Gradients))
			for _, g := range p.Gradients {
				pairs = append(pairs, presets.GradientPreset{Start: g.Start, End: g.End})
			}
			s.custom.AddGradients(pairs...)
		} else {
			s.custom.AddColors(p.Colors...)
		}
	}

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, string(t), p.Source, p.Model, p.Values()); err != nil {
			logging.WarnWithComponent(logging.ComponentExtraction, "Failed to record palette", "error", err)
		}
	}

	logging.InfoWithComponent(logging.ComponentExtraction, "Extracted colors",
		"type", t, "source", p.Source, "count", count(p), "duration", time.Since(start))
	return p, nil
}

func count(p Palette) int {
	if p.Type == TypeGradient {
		return len(p.Gradients)
	}
	return len(p.Colors)
}

// Config selects and configures the extractor.
type Config struct {
	Mode    string
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ConfigFromEnv reads COLOR_EXTRACTOR, OPENAI_API_KEY, OPENAI_BASE_URL,
// AI_MODEL and AI_TIMEOUT.
func ConfigFromEnv() Config {
	return Config{
		Mode:    strings.ToLower(config.Get("COLOR_EXTRACTOR", "model")),
		APIKey:  config.Get("OPENAI_API_KEY", ""),
		BaseURL: config.Get("OPENAI_BASE_URL", ""),
		Model:   config.Get("AI_MODEL", DefaultModel),
		Timeout: config.GetDuration("AI_TIMEOUT", 60*time.Second),
	}
}

// NewExtractor builds the extractor named by cfg.Mode.
func NewExtractor(cfg Config) (Extractor, error) {
	switch cfg.Mode {
	case "", "model":
		return &ModelExtractor{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
			Client:  &http.Client{},
		}, nil
	case "local":
		return LocalExtractor{}, nil
	}
	return nil, fmt.Errorf("unknown COLOR_EXTRACTOR %q (expected model or local)", cfg.Mode)
}
