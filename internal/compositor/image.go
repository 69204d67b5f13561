package compositor

import (
	"image"

	"github.com/fogleman/gg"
)

// paintImage draws the source scaled into a rounded clip. Under chrome only
// the bottom corners are rounded so the image meets the bar flush.
func paintImage(dc *gg.Context, l Layout, s Settings, src image.Image) error {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	corners := uniformCorners(s.BorderRadius)
	if s.HasChrome() {
		corners = bottomCorners(s.BorderRadius)
	}

	return scoped(dc, func() error {
		roundRectPath(dc, l.ImageX, l.ImageY, l.ScaledWidth, l.ScaledHeight, corners)
		dc.Clip()
		dc.Translate(l.ImageX, l.ImageY)
		dc.Scale(l.ScaledWidth/float64(b.Dx()), l.ScaledHeight/float64(b.Dy()))
		dc.DrawImage(src, -b.Min.X, -b.Min.Y)
		return nil
	})
}
