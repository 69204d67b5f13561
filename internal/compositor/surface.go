package compositor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"io"
	"sync"

	"github.com/rmitchellscott/orangesnap/internal/imageprocessing"
)

// ErrEmptySurface is returned when exporting before anything was rendered.
var ErrEmptySurface = errors.New("surface has not been rendered")

const dataURLPrefix = "data:image/png;base64,"

// Surface owns the most recent composite. Each successful Render replaces the
// raster entirely; a failed Render leaves the previous one in place.
type Surface struct {
	mu  sync.RWMutex
	img *image.RGBA
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Render composes src with s and stores the result. A nil source is a no-op.
func (sf *Surface) Render(src image.Image, s Settings, wallpaper image.Image) error {
	img, err := Compose(src, s, wallpaper)
	if err != nil {
		return err
	}
	if img == nil {
		return nil
	}

	sf.mu.Lock()
	sf.img = img
	sf.mu.Unlock()
	return nil
}

// Image returns the current raster, or nil before the first render.
func (sf *Surface) Image() *image.RGBA {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.img
}

// Size returns the raster dimensions, zero before the first render.
func (sf *Surface) Size() (int, int) {
	img := sf.Image()
	if img == nil {
		return 0, 0
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

// WritePNG encodes the current raster to w.
func (sf *Surface) WritePNG(w io.Writer) error {
	img := sf.Image()
	if img == nil {
		return ErrEmptySurface
	}
	return imageprocessing.EncodePNG(w, img)
}

// PNG returns the current raster as PNG bytes.
func (sf *Surface) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := sf.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL returns the PNG bytes as a data:image/png;base64 URL.
func (sf *Surface) DataURL() (string, error) {
	data, err := sf.PNG()
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}
