package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rmitchellscott/orangesnap/internal/compositor"
	"github.com/rmitchellscott/orangesnap/internal/presets"
)

// LoadSettingsFile overlays the YAML or JSON document at path onto base.
// Keys missing from the file keep their base value.
func LoadSettingsFile(path string, base compositor.Settings) (compositor.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := base
	if err := yaml.Unmarshal(data, &s); err != nil {
		return base, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return s, nil
}

// presetChoice names the presets requested on the command line.
type presetChoice struct {
	Solid     string
	Gradient  string
	Pattern   string
	Wallpaper string
}

// apply resolves each named preset and switches the background to it. Later
// kinds win when several are given: solid, gradient, pattern, wallpaper.
func (p presetChoice) apply(s compositor.Settings) (compositor.Settings, error) {
	if p.Solid != "" {
		c, ok := presets.FindSolid(p.Solid)
		if !ok {
			return s, fmt.Errorf("unknown solid preset %q", p.Solid)
		}
		s.BackgroundType = compositor.BackgroundSolid
		s.BackgroundColor = c.Color
	}
	if p.Gradient != "" {
		g, ok := presets.FindGradient(p.Gradient)
		if !ok {
			return s, fmt.Errorf("unknown gradient preset %q", p.Gradient)
		}
		s.BackgroundType = compositor.BackgroundGradient
		s.GradientStart = g.Start
		s.GradientEnd = g.End
	}
	if p.Pattern != "" {
		pt, ok := presets.FindPattern(p.Pattern)
		if !ok {
			return s, fmt.Errorf("unknown pattern preset %q", p.Pattern)
		}
		s.BackgroundType = compositor.BackgroundPattern
		s.BackgroundColor = pt.Color
	}
	if p.Wallpaper != "" {
		w, ok := presets.FindWallpaper(p.Wallpaper)
		if !ok {
			return s, fmt.Errorf("unknown wallpaper preset %q", p.Wallpaper)
		}
		s.BackgroundType = compositor.BackgroundWallpaper
		s.WallpaperURL = w.URL
	}
	return s, nil
}
