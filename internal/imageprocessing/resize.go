package imageprocessing

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Fit is the placement of a scaled source inside a destination box.
type Fit struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// CoverFit scales the source so it covers the whole destination, centered,
// with the overflow split evenly between both sides. A degenerate source
// yields a zero Fit.
func CoverFit(srcWidth, srcHeight int, dstWidth, dstHeight float64) Fit {
	if srcWidth <= 0 || srcHeight <= 0 {
		return Fit{}
	}
	scale := max(dstWidth/float64(srcWidth), dstHeight/float64(srcHeight))
	return place(srcWidth, srcHeight, dstWidth, dstHeight, scale)
}

// ContainFit scales the source so it fits entirely inside the destination, centered.
func ContainFit(srcWidth, srcHeight int, dstWidth, dstHeight float64) Fit {
	if srcWidth <= 0 || srcHeight <= 0 {
		return Fit{}
	}
	scale := min(dstWidth/float64(srcWidth), dstHeight/float64(srcHeight))
	return place(srcWidth, srcHeight, dstWidth, dstHeight, scale)
}

func place(srcWidth, srcHeight int, dstWidth, dstHeight, scale float64) Fit {
	w := float64(srcWidth) * scale
	h := float64(srcHeight) * scale
	return Fit{
		Scale:   scale,
		OffsetX: (dstWidth - w) / 2,
		OffsetY: (dstHeight - h) / 2,
		Width:   w,
		Height:  h,
	}
}

// ResizeToFit scales an image down so its longer side is at most maxSide,
// preserving aspect ratio. Images already small enough are returned as is.
func ResizeToFit(img image.Image, maxSide int) image.Image {
	if img == nil || maxSide <= 0 {
		return img
	}

	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return img
	}

	fit := ContainFit(b.Dx(), b.Dy(), float64(maxSide), float64(maxSide))
	w, h := max(1, int(fit.Width)), max(1, int(fit.Height))

	resized := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(resized, resized.Bounds(), img, b, xdraw.Src, nil)
	return resized
}
