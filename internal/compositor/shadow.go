package compositor

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// maxBlurSigma bounds the blur actually run. Wider shadows are blurred on a
// downscaled silhouette and stretched back, keeping cost flat in Shadow.
const maxBlurSigma = 8.0

// paintShadow draws the blurred drop shadow under the content block and then
// the block's opaque silhouette. Later stages cover the silhouette.
func paintShadow(dc *gg.Context, l Layout, s Settings, p palette) error {
	if s.Shadow <= 0 {
		return nil
	}

	x, y := l.ImageX, l.FrameY()
	w, h := l.ScaledWidth, l.ScaledHeight+l.ChromeHeight
	corners := uniformCorners(s.BorderRadius)

	sigma := s.Shadow / 2
	offsetY := s.Shadow / 4
	margin := math.Ceil(3*sigma) + 1

	step := 1.0
	if sigma > maxBlurSigma {
		step = math.Ceil(sigma / maxBlurSigma)
	}

	// The silhouette is rasterized on a larger scratch surface so the blur
	// can spread past the canvas edges without clipping the kernel.
	sw := int(math.Ceil((float64(l.CanvasWidth) + 2*margin) / step))
	sh := int(math.Ceil((float64(l.CanvasHeight) + 2*margin) / step))
	silhouette := gg.NewContext(sw, sh)
	silhouette.Scale(1/step, 1/step)
	roundRectPath(silhouette, x+margin, y+margin+offsetY, w, h, corners)
	silhouette.SetColor(color.Black)
	silhouette.Fill()

	mask := shadowMask(imaging.Blur(silhouette.Image(), sigma/step), l, margin, step)

	dst, ok := dc.Image().(draw.Image)
	if !ok {
		return nil
	}
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(p.shadow), image.Point{},
		mask, image.Point{}, draw.Over)

	return scoped(dc, func() error {
		roundRectPath(dc, x, y, w, h, corners)
		dc.SetColor(color.Black)
		dc.Fill()
		return nil
	})
}

// shadowMask maps the blurred scratch surface onto canvas coordinates,
// dropping the margin and undoing the downscale.
func shadowMask(blurred *image.NRGBA, l Layout, margin, step float64) image.Image {
	mask := image.NewNRGBA(image.Rect(0, 0, l.CanvasWidth, l.CanvasHeight))
	if step == 1 {
		m := int(margin)
		draw.Draw(mask, mask.Bounds(), blurred, image.Pt(m, m), draw.Src)
		return mask
	}
	s2d := f64.Aff3{
		step, 0, -margin,
		0, step, -margin,
	}
	xdraw.BiLinear.Transform(mask, s2d, blurred, blurred.Bounds(), xdraw.Src, nil)
	return mask
}
