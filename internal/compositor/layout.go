package compositor

import (
	"errors"
	"fmt"
)

// ChromeHeight is the height of the simulated browser title bar.
const ChromeHeight = 60

// MaxCanvasDimension bounds either side of the output surface.
const MaxCanvasDimension = 32767

// ErrEmptyCanvas is returned when the computed surface has no pixels.
var ErrEmptyCanvas = errors.New("canvas has zero area")

// Layout is the geometry shared by every render stage.
type Layout struct {
	CanvasWidth  int
	CanvasHeight int

	ImageX       float64
	ImageY       float64
	ScaledWidth  float64
	ScaledHeight float64
	ChromeHeight float64
}

// ComputeLayout derives the surface size and image origin. The result depends
// only on the source size, scale, padding and whether chrome is drawn.
func ComputeLayout(srcWidth, srcHeight int, s Settings) Layout {
	scaledWidth := float64(srcWidth) * s.Scale
	scaledHeight := float64(srcHeight) * s.Scale

	chromeHeight := 0.0
	if s.HasChrome() {
		chromeHeight = ChromeHeight
	}

	return Layout{
		// Truncation matches assigning a fractional size to a canvas element.
		CanvasWidth:  int(scaledWidth + s.Padding*2),
		CanvasHeight: int(scaledHeight + chromeHeight + s.Padding*2),
		ImageX:       s.Padding,
		ImageY:       s.Padding + chromeHeight,
		ScaledWidth:  scaledWidth,
		ScaledHeight: scaledHeight,
		ChromeHeight: chromeHeight,
	}
}

// FrameY is the top of the content block: the chrome bar when present,
// otherwise the image itself.
func (l Layout) FrameY() float64 {
	return l.ImageY - l.ChromeHeight
}

func (l Layout) check() error {
	if l.CanvasWidth <= 0 || l.CanvasHeight <= 0 {
		return ErrEmptyCanvas
	}
	if l.CanvasWidth > MaxCanvasDimension || l.CanvasHeight > MaxCanvasDimension {
		return fmt.Errorf("canvas %dx%d exceeds the %d pixel limit", l.CanvasWidth, l.CanvasHeight, MaxCanvasDimension)
	}
	return nil
}
