package compositor

import (
	"image/color"

	"github.com/fogleman/gg"
)

const (
	chromeButtonRadius  = 8
	chromeButtonOffsetY = 20
	addressBarInsetX    = 100
	addressBarInsetY    = 12
	addressBarHeight    = 36
	addressBarRadius    = 6
	addressFontSize     = 14
	addressText         = "https://example.com"
)

var (
	chromeFill       = color.NRGBA{R: 0xe8, G: 0xea, B: 0xed, A: 0xff}
	safariFill       = color.NRGBA{R: 0xf6, G: 0xf6, B: 0xf6, A: 0xff}
	addressBarFill   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	addressBarStroke = color.NRGBA{R: 0xda, G: 0xdc, B: 0xe0, A: 0xff}
	addressTextColor = color.NRGBA{R: 0x5f, G: 0x63, B: 0x68, A: 0xff}
	windowButtons    = []struct {
		offsetX float64
		fill    color.NRGBA
	}{
		{20, color.NRGBA{R: 0xff, G: 0x5f, B: 0x57, A: 0xff}},
		{44, color.NRGBA{R: 0xff, G: 0xbd, B: 0x2e, A: 0xff}},
		{68, color.NRGBA{R: 0x28, G: 0xca, B: 0x42, A: 0xff}},
	}
)

// paintChrome draws the browser title bar above the image and returns its
// height. Both styles share the same window buttons and differ in bar color.
func paintChrome(dc *gg.Context, l Layout, s Settings) (float64, error) {
	if !s.HasChrome() {
		return 0, nil
	}

	x, y, w := l.ImageX, l.FrameY(), l.ScaledWidth

	err := scoped(dc, func() error {
		bar := chromeFill
		if s.BrowserStyle == BrowserSafari {
			bar = safariFill
		}
		roundRectPath(dc, x, y, w, ChromeHeight, topCorners(s.BorderRadius))
		dc.SetColor(bar)
		dc.Fill()

		for _, b := range windowButtons {
			dc.DrawCircle(x+b.offsetX, y+chromeButtonOffsetY, chromeButtonRadius)
			dc.SetColor(b.fill)
			dc.Fill()
		}

		return paintAddressBar(dc, x+addressBarInsetX, y+addressBarInsetY, w-2*addressBarInsetX)
	})
	if err != nil {
		return 0, err
	}
	return ChromeHeight, nil
}

func paintAddressBar(dc *gg.Context, x, y, w float64) error {
	if w <= 0 {
		return nil
	}

	roundRectPath(dc, x, y, w, addressBarHeight, uniformCorners(addressBarRadius))
	dc.SetColor(addressBarFill)
	dc.FillPreserve()
	dc.SetColor(addressBarStroke)
	dc.SetLineWidth(1)
	dc.Stroke()

	face, err := sansFace(addressFontSize)
	if err != nil {
		return err
	}
	defer face.Close()

	dc.SetFontFace(face)
	dc.SetColor(addressTextColor)
	dc.DrawString(addressText, x+12, y+24)
	return nil
}
