package compositor

import "github.com/fogleman/gg"

// scoped runs fn with a saved copy of the drawing state (transform, colors,
// line width) and restores it on every return path, including panics.
// gg's Pop keeps the current mask, so the clip is reset explicitly: stages
// never clip outside a scope, and a scope always ends unclipped.
func scoped(dc *gg.Context, fn func() error) error {
	dc.Push()
	defer func() {
		dc.ClearPath()
		dc.Pop()
		dc.ResetClip()
	}()
	return fn()
}
