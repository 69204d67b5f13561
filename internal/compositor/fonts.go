package compositor

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularOnce sync.Once
	regularFont *truetype.Font
	regularErr  error
)

// sansFace returns a new Go Regular face at size px. Faces keep glyph caches
// and are not safe for concurrent use, so each render gets its own.
func sansFace(size float64) (font.Face, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = truetype.Parse(goregular.TTF)
	})
	if regularErr != nil {
		return nil, fmt.Errorf("failed to parse Go Regular font: %w", regularErr)
	}
	return truetype.NewFace(regularFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
