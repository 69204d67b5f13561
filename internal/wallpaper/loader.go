// Package wallpaper loads background images off the render path. Loads run in
// their own goroutine and report through a one-shot channel; the Tracker keeps
// whichever successful load arrived last.
package wallpaper

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/rmitchellscott/orangesnap/internal/imageprocessing"
	"github.com/rmitchellscott/orangesnap/internal/logging"
	"github.com/rmitchellscott/orangesnap/internal/utils"
)

// Result is the outcome of one load.
type Result struct {
	Source string
	Image  image.Image
	Err    error
}

// Loader fetches wallpapers from http(s) URLs, file:// URLs or local paths.
type Loader struct {
	Client  *http.Client
	Policy  utils.URLPolicy
	Timeout time.Duration
}

// NewLoader builds a loader using the environment URL policy.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		Client:  &http.Client{},
		Policy:  utils.PolicyFromEnv(),
		Timeout: timeout,
	}
}

// Load starts decoding src and returns a channel that receives exactly one
// Result and is then closed. Earlier loads are never cancelled.
func (l *Loader) Load(ctx context.Context, src string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		img, err := l.load(ctx, src)
		if err != nil {
			logging.WarnWithComponent(logging.ComponentWallpaper, "Wallpaper load failed", "source", src, "error", err)
		} else {
			b := img.Bounds()
			logging.DebugWithComponent(logging.ComponentWallpaper, "Wallpaper loaded", "source", src, "width", b.Dx(), "height", b.Dy())
		}
		out <- Result{Source: src, Image: img, Err: err}
	}()
	return out
}

func (l *Loader) load(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("empty wallpaper source")
	}

	kind, loc := utils.ClassifySource(src)
	switch kind {
	case utils.SourceRemote:
		if err := l.Policy.Validate(ctx, loc); err != nil {
			return nil, err
		}
		img, _, err := imageprocessing.LoadImageFromURL(ctx, l.Client, loc, l.Timeout)
		return img, err
	case utils.SourceStdin:
		return nil, fmt.Errorf("wallpaper cannot be read from stdin")
	default:
		img, _, err := imageprocessing.LoadFile(loc)
		return img, err
	}
}
