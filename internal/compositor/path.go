package compositor

import (
	"math"

	"github.com/fogleman/gg"
)

// Corners holds per-corner radii in canvas roundRect order:
// top-left, top-right, bottom-right, bottom-left.
type Corners [4]float64

// uniformCorners rounds all four corners by r.
func uniformCorners(r float64) Corners {
	return Corners{r, r, r, r}
}

// topCorners rounds only the top edge, used for the chrome bar.
func topCorners(r float64) Corners {
	return Corners{r, r, 0, 0}
}

// bottomCorners rounds only the bottom edge, used for the image under chrome.
func bottomCorners(r float64) Corners {
	return Corners{0, 0, r, r}
}

// fit scales the radii down uniformly when two radii sharing a side would
// overlap, as canvas roundRect does.
func (c Corners) fit(w, h float64) Corners {
	for i := range c {
		if c[i] < 0 {
			c[i] = 0
		}
	}
	tl, tr, br, bl := c[0], c[1], c[2], c[3]
	factor := 1.0
	for _, pair := range []struct{ side, sum float64 }{
		{w, tl + tr},
		{h, tr + br},
		{w, br + bl},
		{h, bl + tl},
	} {
		if pair.sum > 0 && pair.side/pair.sum < factor {
			factor = pair.side / pair.sum
		}
	}
	if factor < 1 {
		for i := range c {
			c[i] *= factor
		}
	}
	return c
}

// roundRectPath appends a closed rounded rectangle to the current path.
func roundRectPath(dc *gg.Context, x, y, w, h float64, corners Corners) {
	c := corners.fit(w, h)
	tl, tr, br, bl := c[0], c[1], c[2], c[3]

	dc.NewSubPath()
	dc.MoveTo(x+tl, y)
	dc.LineTo(x+w-tr, y)
	corner(dc, x+w-tr, y+tr, tr, -math.Pi/2, 0, x+w, y)
	dc.LineTo(x+w, y+h-br)
	corner(dc, x+w-br, y+h-br, br, 0, math.Pi/2, x+w, y+h)
	dc.LineTo(x+bl, y+h)
	corner(dc, x+bl, y+h-bl, bl, math.Pi/2, math.Pi, x, y+h)
	dc.LineTo(x, y+tl)
	corner(dc, x+tl, y+tl, tl, math.Pi, 3*math.Pi/2, x, y)
	dc.ClosePath()
}

// corner draws a quarter arc, or goes straight through the square corner
// point when the radius is zero.
func corner(dc *gg.Context, cx, cy, r, from, to, squareX, squareY float64) {
	if r <= 0 {
		dc.LineTo(squareX, squareY)
		return
	}
	dc.DrawArc(cx, cy, r, from, to)
}
