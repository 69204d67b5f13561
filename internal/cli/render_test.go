package cli

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmitchellscott/orangesnap/internal/compositor"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCommand(stdin io.Reader) (*Command, *bytes.Buffer) {
	var out bytes.Buffer
	return &Command{Stdin: stdin, Stdout: &out, Stderr: io.Discard}, &out
}

func decodeSize(t *testing.T, r io.Reader) (int, int) {
	t.Helper()
	img, err := png.Decode(r)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "shot.png", 100, 50, color.White)
	out := filepath.Join(dir, "result.png")

	cmd, _ := newTestCommand(nil)
	err := cmd.Run(context.Background(), []string{"--padding", "10", "--scale", "1", "--shadow", "0", "--out", out, src})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if w, h := decodeSize(t, f); w != 120 || h != 70 {
		t.Errorf("size = %dx%d, want 120x70", w, h)
	}
}

func TestRunStdinToStdout(t *testing.T) {
	var in bytes.Buffer
	path := writePNG(t, t.TempDir(), "shot.png", 40, 30, color.Black)
	data, _ := os.ReadFile(path)
	in.Write(data)

	cmd, out := newTestCommand(&in)
	err := cmd.Run(context.Background(), []string{"--padding", "5", "--scale", "2", "--browser", "chrome", "--out", "-", "-"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if w, h := decodeSize(t, out); w != 90 || h != 70+int(compositor.ChromeHeight) {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestRunDataURL(t *testing.T) {
	src := writePNG(t, t.TempDir(), "shot.png", 20, 20, color.White)

	cmd, out := newTestCommand(nil)
	if err := cmd.Run(context.Background(), []string{"--data-url", src}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "data:image/png;base64,") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunOutDir(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "shot.png", 20, 20, color.White)
	exports := filepath.Join(dir, "exports")

	cmd, out := newTestCommand(nil)
	if err := cmd.Run(context.Background(), []string{"--out-dir", exports, src}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	path := strings.TrimSpace(out.String())
	if filepath.Dir(path) != exports {
		t.Errorf("printed path %q is not in %s", path, exports)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export missing: %v", err)
	}
}

func TestRunExportUsesConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "shot.png", 20, 20, color.White)
	t.Setenv("RENDERED_IMAGES_PATH", filepath.Join(dir, "renders"))
	t.Setenv("EXPORT_RETENTION", "1h")

	cmd, out := newTestCommand(nil)
	if err := cmd.Run(context.Background(), []string{"--export", src}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	path := strings.TrimSpace(out.String())
	if filepath.Dir(path) != filepath.Join(dir, "renders") {
		t.Errorf("export written to %q", path)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "shot.png", 20, 20, color.White)
	notImage := filepath.Join(dir, "notes.txt")
	os.WriteFile(notImage, []byte("hello"), 0644)

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"no source", []string{}, ErrNoSource},
		{"not an image", []string{notImage}, nil},
		{"negative padding", []string{"--padding", "-1", src}, compositor.ErrInvalidSettings},
		{"bad browser", []string{"--browser", "edge", src}, compositor.ErrInvalidSettings},
		{"unknown preset", []string{"--preset-gradient", "nope", src}, nil},
		{"two sources", []string{src, src}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newTestCommand(nil)
			err := cmd.Run(context.Background(), append([]string{"--out", filepath.Join(dir, "x.png")}, tt.args...))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestRunMissingWallpaperStillRenders(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "shot.png", 20, 20, color.White)

	cmd, out := newTestCommand(nil)
	err := cmd.Run(context.Background(), []string{"--wallpaper", filepath.Join(dir, "missing.jpg"), "--out", "-", src})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	decodeSize(t, out)
}

func TestRunWallpaperFromFile(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "shot.png", 20, 20, color.White)
	wp := writePNG(t, dir, "wall.png", 8, 8, color.RGBA{R: 200, A: 255})

	cmd, out := newTestCommand(nil)
	err := cmd.Run(context.Background(), []string{"--wallpaper", wp, "--padding", "10", "--shadow", "0", "--scale", "1", "--out", "-", src})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	img, err := png.Decode(out)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(2, 2).RGBA()
	if r>>8 < 190 || g>>8 > 10 || b>>8 > 10 || a>>8 != 255 {
		t.Errorf("corner pixel = %d,%d,%d,%d, want wallpaper red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestRunCapture(t *testing.T) {
	cmd, out := newTestCommand(nil)
	cmd.fetcher = &sourceFetcher{Capture: func(index int) (*image.RGBA, error) {
		if index != 1 {
			t.Errorf("captured display %d, want 1", index)
		}
		return image.NewRGBA(image.Rect(0, 0, 30, 10)), nil
	}}

	err := cmd.Run(context.Background(), []string{"--capture", "1", "--padding", "0", "--scale", "1", "--out", "-"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if w, h := decodeSize(t, out); w != 30 || h != 10 {
		t.Errorf("size = %dx%d, want 30x10", w, h)
	}
}

func TestSettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "settings.yaml")
	os.WriteFile(file, []byte("padding: 10\nborderRadius: 4\nbrowserStyle: safari\n"), 0644)

	var f renderFlags
	fs := newFlagSet(&f, io.Discard)
	if err := fs.Parse([]string{"--settings", file, "--padding", "30", "--preset-gradient", "pink coral", "--shadow-color", "#ABC"}); err != nil {
		t.Fatal(err)
	}
	s, err := f.settings(fs)
	if err != nil {
		t.Fatalf("settings() error = %v", err)
	}

	if s.Padding != 30 {
		t.Errorf("Padding = %v, want flag value 30", s.Padding)
	}
	if s.BorderRadius != 4 || s.BrowserStyle != compositor.BrowserSafari {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.BackgroundType != compositor.BackgroundGradient {
		t.Errorf("BackgroundType = %s, want gradient", s.BackgroundType)
	}
	if s.ShadowColor != "#aabbcc" {
		t.Errorf("ShadowColor = %s, want normalized #aabbcc", s.ShadowColor)
	}
	if s.Scale != compositor.DefaultSettings().Scale {
		t.Errorf("Scale = %v, want default", s.Scale)
	}
}

func TestLoadSettingsFileJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.json")
	os.WriteFile(file, []byte(`{"backgroundType": "pattern", "backgroundColor": "#ffe4e6"}`), 0644)

	s, err := LoadSettingsFile(file, compositor.DefaultSettings())
	if err != nil {
		t.Fatalf("LoadSettingsFile() error = %v", err)
	}
	if s.BackgroundType != compositor.BackgroundPattern || s.BackgroundColor != "#ffe4e6" {
		t.Errorf("got %+v", s)
	}
	if s.Padding != compositor.DefaultSettings().Padding {
		t.Errorf("Padding = %v, want default", s.Padding)
	}

	if _, err := LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"), s); err == nil {
		t.Error("expected an error for a missing file")
	}
}
