// Package extraction suggests background colors for a screenshot, either by
// asking an OpenAI-compatible vision model or by clustering the pixels locally.
package extraction

import (
	"context"
	"errors"
	"strings"
)

// Type selects what kind of suggestion is produced.
type Type string

const (
	TypeSolid    Type = "solid"
	TypeGradient Type = "gradient"
)

var (
	ErrMissingCredential = errors.New("OpenAI API key is not configured on the server")
	ErrMissingImage      = errors.New("Image file is required")
	ErrUnsupportedType   = errors.New("unsupported extraction type")
)

// ParseError means the model answered but no color data could be recovered.
// Raw carries the unparsed answer for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "Failed to extract color data from AI response"
}

// ParseType maps the x-extraction-type header to a Type. Empty means solid.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeSolid:
		return TypeSolid, nil
	case TypeGradient:
		return TypeGradient, nil
	}
	return "", ErrUnsupportedType
}

// GradientPair is one suggested gradient.
type GradientPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Image is an uploaded screenshot.
type Image struct {
	Data        []byte
	ContentType string
}

// Palette is the outcome of one extraction. Exactly one of Colors and
// Gradients is populated, matching Type.
type Palette struct {
	Type      Type
	Colors    []string
	Gradients []GradientPair
	Source    string
	Model     string
}

// Values returns the populated color list for JSON responses.
func (p Palette) Values() any {
	if p.Type == TypeGradient {
		return p.Gradients
	}
	return p.Colors
}

// Extractor produces a palette from an image.
type Extractor interface {
	// Name identifies the extractor ("model" or "local").
	Name() string
	// Check reports configuration problems before any upload is read.
	Check() error
	Extract(ctx context.Context, img Image, t Type) (Palette, error)
}
