package wallpaper

import (
	"image"
	"sync"
)

// Tracker holds the wallpaper currently shown. Successful results replace it
// unconditionally in arrival order, so a slow early load can overwrite a
// later one.
type Tracker struct {
	mu     sync.RWMutex
	source string
	img    image.Image
}

// Apply stores a successful result and reports whether it was stored. Failed
// results leave the current wallpaper untouched.
func (t *Tracker) Apply(r Result) bool {
	if r.Err != nil || r.Image == nil {
		return false
	}
	t.mu.Lock()
	t.source = r.Source
	t.img = r.Image
	t.mu.Unlock()
	return true
}

// Current returns the wallpaper and the source it came from.
func (t *Tracker) Current() (image.Image, string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.img, t.source
}
