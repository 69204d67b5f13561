package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/rmitchellscott/orangesnap/internal/capture"
	"github.com/rmitchellscott/orangesnap/internal/imageprocessing"
	"github.com/rmitchellscott/orangesnap/internal/logging"
	"github.com/rmitchellscott/orangesnap/internal/utils"
)

// ErrNoSource is returned when neither a source argument nor --capture was given.
var ErrNoSource = errors.New("no screenshot given: pass a file, URL, - for stdin, or --capture N")

// sourceFetcher acquires the screenshot to beautify.
type sourceFetcher struct {
	Stdin   io.Reader
	Client  *http.Client
	Policy  utils.URLPolicy
	Timeout time.Duration
	Capture func(index int) (*image.RGBA, error)
}

func (f sourceFetcher) fetch(ctx context.Context, ref string, display int) (image.Image, error) {
	if display >= 0 {
		img, err := f.Capture(display)
		if err != nil {
			return nil, err
		}
		logging.InfoWithComponent(logging.ComponentCapture, "Captured display", "display", display,
			"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
		return img, nil
	}
	if ref == "" {
		return nil, ErrNoSource
	}

	var (
		img image.Image
		err error
	)
	kind, loc := utils.ClassifySource(ref)
	switch kind {
	case utils.SourceStdin:
		img, _, err = imageprocessing.Decode(f.Stdin)
	case utils.SourceRemote:
		if err = f.Policy.Validate(ctx, loc); err != nil {
			return nil, err
		}
		img, _, err = imageprocessing.LoadImageFromURL(ctx, f.Client, loc, f.Timeout)
	default:
		img, _, err = imageprocessing.LoadFile(loc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load screenshot %s: %w", ref, err)
	}
	return img, nil
}

func defaultFetcher(stdin io.Reader, timeout time.Duration) sourceFetcher {
	return sourceFetcher{
		Stdin:   stdin,
		Client:  &http.Client{},
		Policy:  utils.PolicyFromEnv(),
		Timeout: timeout,
		Capture: capture.Capture,
	}
}
