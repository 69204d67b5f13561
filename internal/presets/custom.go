package presets

import (
	"strings"
	"sync"
)

// CustomPalette collects colors suggested by extraction so they can be
// offered alongside the built-in presets. Safe for concurrent use.
type CustomPalette struct {
	mu        sync.RWMutex
	colors    []string
	gradients []GradientPreset
	limit     int
}

// NewCustomPalette creates a palette keeping at most limit entries per kind.
// A non-positive limit keeps 32.
func NewCustomPalette(limit int) *CustomPalette {
	if limit <= 0 {
		limit = 32
	}
	return &CustomPalette{limit: limit}
}

// AddColors appends colors not already present, newest last, evicting the oldest.
func (p *CustomPalette) AddColors(colors ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, c := range colors {
		c = normalize(c)
		if c == "" || containsString(p.colors, c) {
			continue
		}
		p.colors = append(p.colors, c)
	}
	if over := len(p.colors) - p.limit; over > 0 {
		p.colors = append([]string(nil), p.colors[over:]...)
	}
}

// AddGradients appends gradient pairs not already present.
func (p *CustomPalette) AddGradients(pairs ...GradientPreset) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, g := range pairs {
		g.Start, g.End = normalize(g.Start), normalize(g.End)
		if g.Start == "" || g.End == "" || containsGradient(p.gradients, g) {
			continue
		}
		if g.Name == "" {
			g.Name = strings.TrimPrefix(g.Start, "#") + "-" + strings.TrimPrefix(g.End, "#")
		}
		p.gradients = append(p.gradients, g)
	}
	if over := len(p.gradients) - p.limit; over > 0 {
		p.gradients = append([]GradientPreset(nil), p.gradients[over:]...)
	}
}

// Colors returns a snapshot of the custom colors.
func (p *CustomPalette) Colors() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.colors...)
}

// Gradients returns a snapshot of the custom gradient pairs.
func (p *CustomPalette) Gradients() []GradientPreset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]GradientPreset(nil), p.gradients...)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsGradient(list []GradientPreset, g GradientPreset) bool {
	for _, v := range list {
		if v.Start == g.Start && v.End == g.End {
			return true
		}
	}
	return false
}
