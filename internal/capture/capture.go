// Package capture grabs a display as a screenshot source for the render command.
package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/rmitchellscott/orangesnap/internal/logging"
)

// ErrNoDisplays is returned when the system reports no active displays.
var ErrNoDisplays = errors.New("no active displays found")

// Display describes one active display.
type Display struct {
	Index  int             `json:"index"`
	Bounds image.Rectangle `json:"bounds"`
}

// Swapped in tests; the real functions need a desktop session.
var (
	numActiveDisplays = screenshot.NumActiveDisplays
	displayBounds     = screenshot.GetDisplayBounds
	captureRect       = screenshot.CaptureRect
)

// Displays lists the active displays in system order.
func Displays() []Display {
	n := numActiveDisplays()
	out := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Display{Index: i, Bounds: displayBounds(i)})
	}
	return out
}

// Capture grabs the full area of display index.
func Capture(index int) (*image.RGBA, error) {
	n := numActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplays
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("display %d out of range (%d active)", index, n)
	}

	bounds := displayBounds(index)
	img, err := captureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display %d: %w", index, err)
	}

	logging.InfoWithComponent(logging.ComponentCapture, "Captured display", "display", index, "width", bounds.Dx(), "height", bounds.Dy())
	return img, nil
}
