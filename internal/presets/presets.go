// Package presets holds the one-click choices offered next to the settings:
// solid colors, gradient pairs, pattern tiles and wallpapers, plus the custom
// colors suggested by color extraction.
package presets

import (
	"strings"
)

// Pattern names a procedural background tile.
type Pattern string

const (
	PatternHearts  Pattern = "hearts"
	PatternDots    Pattern = "dots"
	PatternStripes Pattern = "stripes"
	PatternGrid    Pattern = "grid"
)

type ColorPreset struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type GradientPreset struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type PatternPreset struct {
	Name    string  `json:"name"`
	Pattern Pattern `json:"pattern"`
	Color   string  `json:"color"`
}

type WallpaperPreset struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

var solidColors = []ColorPreset{
	{Name: "Light Gray", Color: "#f8f9fa"},
	{Name: "Dark Gray", Color: "#343a40"},
	{Name: "Blue", Color: "#007bff"},
	{Name: "Green", Color: "#28a745"},
	{Name: "Purple", Color: "#6f42c1"},
	{Name: "Pink", Color: "#e83e8c"},
	{Name: "Orange", Color: "#fd7e14"},
	{Name: "Teal", Color: "#20c997"},
}

var gradients = []GradientPreset{
	{Name: "Blue Violet", Start: "#667eea", End: "#764ba2"},
	{Name: "Pink Coral", Start: "#f093fb", End: "#f5576c"},
	{Name: "Sky Cyan", Start: "#4facfe", End: "#00f2fe"},
	{Name: "Mint Blush", Start: "#a8edea", End: "#fed6e3"},
	{Name: "Peach Pink", Start: "#ff9a9e", End: "#fecfef"},
}

var patterns = []PatternPreset{
	{Name: "Hearts", Pattern: PatternHearts, Color: "#a8d8f0"},
	{Name: "Dots", Pattern: PatternDots, Color: "#ffd6cc"},
	{Name: "Stripes", Pattern: PatternStripes, Color: "#e8f5e8"},
	{Name: "Grid", Pattern: PatternGrid, Color: "#f0e6ff"},
}

const unsplash = "https://images.unsplash.com/"

var wallpapers = []WallpaperPreset{
	{
		Name:      "Art1",
		URL:       unsplash + "photo-1578301978018-3005759f48f7?q=80&w=2644&auto=format&fit=crop",
		Thumbnail: unsplash + "photo-1578301978018-3005759f48f7?w=700&auto=format&fit=crop&q=60",
	},
	{
		Name:      "Art2",
		URL:       unsplash + "photo-1580136579312-94651dfd596d?q=80&w=2634&auto=format&fit=crop",
		Thumbnail: unsplash + "photo-1580136579312-94651dfd596d?w=700&auto=format&fit=crop&q=60",
	},
	{
		Name:      "Art3",
		URL:       unsplash + "photo-1579541591970-e5780dc6b31f?q=80&w=2686&auto=format&fit=crop",
		Thumbnail: unsplash + "photo-1579541591970-e5780dc6b31f?w=700&auto=format&fit=crop&q=60",
	},
	{
		Name:      "Mac1",
		URL:       unsplash + "photo-1687042277586-971369d3d241?q=80&w=2670&auto=format&fit=crop",
		Thumbnail: unsplash + "photo-1687042277586-971369d3d241?w=700&auto=format&fit=crop&q=60",
	},
	{
		Name:      "Mac2",
		URL:       unsplash + "photo-1687042277425-89b414406d3a?q=80&w=2670&auto=format&fit=crop",
		Thumbnail: unsplash + "photo-1687042277425-89b414406d3a?w=700&auto=format&fit=crop&q=60",
	},
}

// SolidColors returns a copy of the solid color presets.
func SolidColors() []ColorPreset { return append([]ColorPreset(nil), solidColors...) }

// Gradients returns a copy of the gradient presets.
func Gradients() []GradientPreset { return append([]GradientPreset(nil), gradients...) }

// Patterns returns a copy of the pattern presets.
func Patterns() []PatternPreset { return append([]PatternPreset(nil), patterns...) }

// Wallpapers returns a copy of the wallpaper presets.
func Wallpapers() []WallpaperPreset { return append([]WallpaperPreset(nil), wallpapers...) }

// PatternForColor finds the pattern whose preset color equals hex. The pattern
// background is keyed by color alone, so an unknown color has no pattern.
func PatternForColor(hex string) (PatternPreset, bool) {
	want := normalize(hex)
	for _, p := range patterns {
		if normalize(p.Color) == want {
			return p, true
		}
	}
	return PatternPreset{}, false
}

// FindGradient looks a gradient preset up by name, ignoring case and separators.
func FindGradient(name string) (GradientPreset, bool) {
	for _, g := range gradients {
		if sameName(g.Name, name) {
			return g, true
		}
	}
	return GradientPreset{}, false
}

// FindPattern looks a pattern preset up by name or pattern kind.
func FindPattern(name string) (PatternPreset, bool) {
	for _, p := range patterns {
		if sameName(p.Name, name) || sameName(string(p.Pattern), name) {
			return p, true
		}
	}
	return PatternPreset{}, false
}

// FindWallpaper looks a wallpaper preset up by name.
func FindWallpaper(name string) (WallpaperPreset, bool) {
	for _, w := range wallpapers {
		if sameName(w.Name, name) {
			return w, true
		}
	}
	return WallpaperPreset{}, false
}

// FindSolid looks a solid color preset up by name.
func FindSolid(name string) (ColorPreset, bool) {
	for _, c := range solidColors {
		if sameName(c.Name, name) {
			return c, true
		}
	}
	return ColorPreset{}, false
}

func sameName(a, b string) bool {
	return slug(a) == slug(b)
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalize expands #rgb shorthand and lowercases so preset lookups ignore notation.
func normalize(hex string) string {
	h := strings.ToLower(strings.TrimSpace(hex))
	if len(h) == 4 && h[0] == '#' {
		return string([]byte{'#', h[1], h[1], h[2], h[2], h[3], h[3]})
	}
	return h
}
