// Package compositor turns a screenshot and a Settings value into the
// beautified composite: background, drop shadow, browser chrome and the
// rounded source image, drawn in that order on a fresh raster.
package compositor

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/rmitchellscott/orangesnap/internal/imageprocessing"
)

// Compose renders one composite. A nil source returns (nil, nil): there is
// nothing to draw and the caller keeps whatever it displayed before. The
// wallpaper is only consulted for the wallpaper background type and may be nil.
func Compose(src image.Image, s Settings, wallpaper image.Image) (*image.RGBA, error) {
	if src == nil {
		return nil, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p, err := s.palette()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	b := src.Bounds()
	l := ComputeLayout(b.Dx(), b.Dy(), s)
	if err := l.check(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(l.CanvasWidth, l.CanvasHeight)

	if err := scoped(dc, func() error {
		paintBackground(dc, l, s, p, wallpaper)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if err := paintShadow(dc, l, s, p); err != nil {
		return nil, fmt.Errorf("shadow: %w", err)
	}
	if _, err := paintChrome(dc, l, s); err != nil {
		return nil, fmt.Errorf("chrome: %w", err)
	}
	if err := paintImage(dc, l, s, src); err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}

	return imageprocessing.ToRGBA(dc.Image()), nil
}
