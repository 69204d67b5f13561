package compositor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses CSS hex notation: #rgb, #rgba, #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(hex, "#") {
		return color.NRGBA{}, fmt.Errorf("color %q must start with #", s)
	}

	alpha := uint8(255)
	switch len(hex) {
	case 4, 7:
	case 5:
		a, err := strconv.ParseUint(hex[4:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q", s)
		}
		alpha = uint8(a * 17)
		hex = hex[:4]
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q", s)
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("color %q has invalid length", s)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// NormalizeHex returns the lowercase #rrggbb (or #rrggbbaa when translucent)
// form of a hex color, or the trimmed input unchanged when it does not parse.
func NormalizeHex(s string) string {
	c, err := ParseHexColor(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return FormatHex(c)
}

// FormatHex renders c as #rrggbb, appending the alpha byte when it is not opaque.
func FormatHex(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// palette holds the parsed colors of one Settings value.
type palette struct {
	background    color.NRGBA
	gradientStart color.NRGBA
	gradientEnd   color.NRGBA
	shadow        color.NRGBA
}

func (s Settings) palette() (palette, error) {
	var p palette
	var err error
	if p.background, err = ParseHexColor(s.BackgroundColor); err != nil {
		return p, fmt.Errorf("backgroundColor: %w", err)
	}
	if p.gradientStart, err = ParseHexColor(s.GradientStart); err != nil {
		return p, fmt.Errorf("gradientStart: %w", err)
	}
	if p.gradientEnd, err = ParseHexColor(s.GradientEnd); err != nil {
		return p, fmt.Errorf("gradientEnd: %w", err)
	}
	if p.shadow, err = ParseHexColor(s.ShadowColor); err != nil {
		return p, fmt.Errorf("shadowColor: %w", err)
	}
	return p, nil
}
