package compositor

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/rmitchellscott/orangesnap/internal/imageprocessing"
	"github.com/rmitchellscott/orangesnap/internal/presets"
)

// paintBackground fills the whole surface according to the background type.
// Pattern colors without a preset and wallpapers that have not loaded leave
// the surface transparent.
func paintBackground(dc *gg.Context, l Layout, s Settings, p palette, wallpaper image.Image) {
	w, h := float64(l.CanvasWidth), float64(l.CanvasHeight)

	switch s.BackgroundType {
	case BackgroundSolid:
		dc.SetColor(p.background)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()

	case BackgroundGradient:
		grad := gg.NewLinearGradient(0, 0, w, h)
		grad.AddColorStop(0, p.gradientStart)
		grad.AddColorStop(1, p.gradientEnd)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()

	case BackgroundPattern:
		preset, ok := presets.PatternForColor(s.BackgroundColor)
		if !ok {
			return
		}
		base, err := ParseHexColor(preset.Color)
		if err != nil {
			return
		}
		drawPattern(dc, w, h, preset.Pattern, base)

	case BackgroundWallpaper:
		if wallpaper == nil {
			return
		}
		drawWallpaper(dc, w, h, wallpaper)
	}
}

// drawWallpaper cover-fits the wallpaper over the surface and centers it so
// the overflow is cropped evenly on both sides.
func drawWallpaper(dc *gg.Context, w, h float64, wallpaper image.Image) {
	b := wallpaper.Bounds()
	fit := imageprocessing.CoverFit(b.Dx(), b.Dy(), w, h)
	if fit.Scale <= 0 {
		return
	}
	_ = scoped(dc, func() error {
		dc.Translate(fit.OffsetX, fit.OffsetY)
		dc.Scale(fit.Scale, fit.Scale)
		dc.DrawImage(wallpaper, -b.Min.X, -b.Min.Y)
		return nil
	})
}

const patternUnit = 30.0

var (
	patternInk     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	patternGridInk = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
)

// drawPattern paints the base color and then the translucent white tile.
func drawPattern(dc *gg.Context, w, h float64, kind presets.Pattern, base color.NRGBA) {
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(patternInk)
	switch kind {
	case presets.PatternHearts:
		step := patternUnit * 2
		for x := 0.0; x < w; x += step {
			for y := 0.0; y < h; y += step {
				drawHeart(dc, x+patternUnit, y+patternUnit, patternUnit/3)
			}
		}
	case presets.PatternDots:
		for x := 0.0; x < w; x += patternUnit {
			for y := 0.0; y < h; y += patternUnit {
				dc.DrawCircle(x+patternUnit/2, y+patternUnit/2, patternUnit/6)
				dc.Fill()
			}
		}
	case presets.PatternStripes:
		for x := 0.0; x < w; x += patternUnit {
			dc.DrawRectangle(x, 0, patternUnit/2, h)
			dc.Fill()
		}
	case presets.PatternGrid:
		dc.SetLineWidth(2)
		dc.SetColor(patternGridInk)
		for x := 0.0; x < w; x += patternUnit {
			dc.DrawLine(x, 0, x, h)
			dc.Stroke()
		}
		for y := 0.0; y < h; y += patternUnit {
			dc.DrawLine(0, y, w, y)
			dc.Stroke()
		}
	}
}

// drawHeart fills a heart whose notch sits at (x, y) and whose tip is size below it.
func drawHeart(dc *gg.Context, x, y, size float64) {
	dc.NewSubPath()
	dc.MoveTo(x, y+size/4)
	dc.CubicTo(x, y, x-size/2, y, x-size/2, y+size/4)
	dc.CubicTo(x-size/2, y+size/2, x, y+size*3/4, x, y+size)
	dc.CubicTo(x, y+size*3/4, x+size/2, y+size/2, x+size/2, y+size/4)
	dc.CubicTo(x+size/2, y, x, y, x, y+size/4)
	dc.ClosePath()
	dc.Fill()
}
