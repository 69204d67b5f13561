// Package cli implements the render command: acquire a screenshot, load an
// optional wallpaper, compose it and export the result.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rmitchellscott/orangesnap/internal/compositor"
	"github.com/rmitchellscott/orangesnap/internal/config"
	"github.com/rmitchellscott/orangesnap/internal/logging"
	"github.com/rmitchellscott/orangesnap/internal/presets"
	"github.com/rmitchellscott/orangesnap/internal/storage"
	"github.com/rmitchellscott/orangesnap/internal/wallpaper"
)

// DefaultOutput is the file written when no output option is given.
const DefaultOutput = "beautified-screenshot.png"

type renderFlags struct {
	settingsFile string
	presets      presetChoice

	radius, padding, scale, shadow float64
	background, color, browser     string
	gradientStart, gradientEnd     string
	shadowColor, wallpaperURL      string

	display int
	out     string
	outDir  string
	export  bool
	dataURL bool
	timeout time.Duration
}

func newFlagSet(f *renderFlags, stderr io.Writer) *flag.FlagSet {
	d := compositor.DefaultSettings()
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: orangesnap render [flags] <image|url|->\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&f.settingsFile, "settings", "", "YAML or JSON settings file used as the base")
	fs.StringVar(&f.presets.Solid, "preset-solid", "", "solid color preset name")
	fs.StringVar(&f.presets.Gradient, "preset-gradient", "", "gradient preset name")
	fs.StringVar(&f.presets.Pattern, "preset-pattern", "", "pattern preset name (hearts, dots, stripes, grid)")
	fs.StringVar(&f.presets.Wallpaper, "preset-wallpaper", "", "wallpaper preset name")

	fs.Float64Var(&f.radius, "radius", d.BorderRadius, "corner radius in pixels")
	fs.Float64Var(&f.padding, "padding", d.Padding, "padding around the screenshot in pixels")
	fs.Float64Var(&f.scale, "scale", d.Scale, "output scale factor")
	fs.Float64Var(&f.shadow, "shadow", d.Shadow, "shadow blur in pixels, 0 disables")
	fs.StringVar(&f.background, "background", string(d.BackgroundType), "background type: solid, gradient, pattern, wallpaper")
	fs.StringVar(&f.color, "color", d.BackgroundColor, "background color for solid and pattern backgrounds")
	fs.StringVar(&f.gradientStart, "gradient-start", d.GradientStart, "gradient start color")
	fs.StringVar(&f.gradientEnd, "gradient-end", d.GradientEnd, "gradient end color")
	fs.StringVar(&f.browser, "browser", string(d.BrowserStyle), "window frame: none, chrome, safari")
	fs.StringVar(&f.shadowColor, "shadow-color", d.ShadowColor, "shadow color, #rrggbbaa accepted")
	fs.StringVar(&f.wallpaperURL, "wallpaper", "", "wallpaper URL or path")

	fs.IntVar(&f.display, "capture", -1, "capture display N instead of reading an image")
	fs.StringVar(&f.out, "out", DefaultOutput, "output PNG path, - for stdout")
	fs.StringVar(&f.outDir, "out-dir", "", "store the PNG in this directory under a content-hash name")
	fs.BoolVar(&f.export, "export", false, "store the PNG under RENDERED_IMAGES_PATH with a content-hash name")
	fs.BoolVar(&f.dataURL, "data-url", false, "print a data URL instead of writing a file")
	fs.DurationVar(&f.timeout, "timeout", config.GetDuration("WALLPAPER_TIMEOUT", 30*time.Second), "download timeout")
	return fs
}

// settings builds the render settings: defaults, then the settings file,
// then presets, then any flag given explicitly.
func (f *renderFlags) settings(fs *flag.FlagSet) (compositor.Settings, error) {
	s := compositor.DefaultSettings()
	if f.settingsFile != "" {
		var err error
		if s, err = LoadSettingsFile(f.settingsFile, s); err != nil {
			return s, err
		}
	}

	s, err := f.presets.apply(s)
	if err != nil {
		return s, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "radius":
			s.BorderRadius = f.radius
		case "padding":
			s.Padding = f.padding
		case "scale":
			s.Scale = f.scale
		case "shadow":
			s.Shadow = f.shadow
		case "background":
			s.BackgroundType = compositor.BackgroundType(f.background)
		case "color":
			s.BackgroundColor = f.color
		case "gradient-start":
			s.GradientStart = f.gradientStart
		case "gradient-end":
			s.GradientEnd = f.gradientEnd
		case "browser":
			s.BrowserStyle = compositor.BrowserStyle(f.browser)
		case "shadow-color":
			s.ShadowColor = f.shadowColor
		case "wallpaper":
			s.WallpaperURL = f.wallpaperURL
			if s.WallpaperURL != "" {
				s.BackgroundType = compositor.BackgroundWallpaper
			}
		}
	})

	s.BackgroundColor = compositor.NormalizeHex(s.BackgroundColor)
	s.GradientStart = compositor.NormalizeHex(s.GradientStart)
	s.GradientEnd = compositor.NormalizeHex(s.GradientEnd)
	s.ShadowColor = compositor.NormalizeHex(s.ShadowColor)
	return s, s.Validate()
}

// Command runs render with its collaborators.
type Command struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	fetcher *sourceFetcher
	loader  *wallpaper.Loader
}

// NewCommand wires the command to the process streams.
func NewCommand() *Command {
	return &Command{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run parses args and renders one composite.
func (c *Command) Run(ctx context.Context, args []string) error {
	var f renderFlags
	fs := newFlagSet(&f, c.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected one screenshot, got %d", fs.NArg())
	}

	s, err := f.settings(fs)
	if err != nil {
		return err
	}
	warnPatternColor(s)

	// The wallpaper decodes while the screenshot is acquired.
	var pending <-chan wallpaper.Result
	if s.BackgroundType == compositor.BackgroundWallpaper && s.WallpaperURL != "" {
		pending = c.wallpaperLoader(f.timeout).Load(ctx, s.WallpaperURL)
	}

	fetcher := c.sourceFetcher(f.timeout)
	src, err := fetcher.fetch(ctx, fs.Arg(0), f.display)
	if err != nil {
		return err
	}

	var tracker wallpaper.Tracker
	if pending != nil {
		select {
		case r := <-pending:
			if !tracker.Apply(r) {
				logging.WarnWithComponent(logging.ComponentWallpaper, "Rendering without wallpaper", "source", r.Source, "error", r.Err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	wp, _ := tracker.Current()

	surface := compositor.NewSurface()
	if err := surface.Render(src, s, wp); err != nil {
		return err
	}
	w, h := surface.Size()
	logging.InfoWithComponent(logging.ComponentRender, "Rendered composite", "width", w, "height", h,
		"background", s.BackgroundType, "browser", s.BrowserStyle)

	return c.export(ctx, surface, f, fs)
}

func (c *Command) export(ctx context.Context, surface *compositor.Surface, f renderFlags, fs *flag.FlagSet) error {
	outSet := false
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "out" {
			outSet = true
		}
	})

	if f.dataURL {
		url, err := surface.DataURL()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(c.Stdout, url); err != nil {
			return err
		}
	}

	if store := f.exportStore(); store != nil {
		data, err := surface.PNG()
		if err != nil {
			return err
		}
		_, path, err := store.Store(ctx, data)
		if err != nil {
			return err
		}
		if !f.dataURL {
			fmt.Fprintln(c.Stdout, path)
		}
		if retention := config.GetDuration("EXPORT_RETENTION", 0); retention > 0 {
			if n, err := store.Prune(ctx, retention); err != nil {
				logging.WarnWithComponent(logging.ComponentExport, "Failed to prune exports", "error", err)
			} else if n > 0 {
				logging.InfoWithComponent(logging.ComponentExport, "Pruned old exports", "removed", n)
			}
		}
	}

	if (f.dataURL || f.outDir != "" || f.export) && !outSet {
		return nil
	}
	if f.out == "-" {
		return surface.WritePNG(c.Stdout)
	}
	return writeFile(surface, f.out)
}

func (f renderFlags) exportStore() *storage.ExportStore {
	switch {
	case f.outDir != "":
		return storage.NewExportStore(f.outDir)
	case f.export:
		return storage.DefaultExportStore()
	}
	return nil
}

func writeFile(surface *compositor.Surface, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := surface.WritePNG(file); err != nil {
		return err
	}
	logging.InfoWithComponent(logging.ComponentExport, "Wrote composite", "path", path)
	return nil
}

func warnPatternColor(s compositor.Settings) {
	if s.BackgroundType != compositor.BackgroundPattern {
		return
	}
	if _, ok := presets.PatternForColor(s.BackgroundColor); !ok {
		logging.WarnWithComponent(logging.ComponentRender, "No pattern uses this color; background will be transparent",
			"color", s.BackgroundColor)
	}
}

func (c *Command) sourceFetcher(timeout time.Duration) sourceFetcher {
	if c.fetcher != nil {
		return *c.fetcher
	}
	return defaultFetcher(c.Stdin, timeout)
}

func (c *Command) wallpaperLoader(timeout time.Duration) *wallpaper.Loader {
	if c.loader != nil {
		return c.loader
	}
	return wallpaper.NewLoader(timeout)
}

// IsUsage reports whether err came from flag parsing, including -h.
func IsUsage(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
