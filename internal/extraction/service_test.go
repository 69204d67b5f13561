package extraction

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rmitchellscott/orangesnap/internal/presets"
)

// quadrants paints four flat colored quadrants.
func quadrants(t *testing.T) []byte {
	t.Helper()
	cols := []color.RGBA{
		{R: 0x10, G: 0x10, B: 0x10, A: 0xff},
		{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		{R: 0xe0, G: 0x20, B: 0x20, A: 0xff},
		{R: 0x20, G: 0x40, B: 0xe0, A: 0xff},
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, cols[(y/32)*2+x/32])
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLocalExtractor(t *testing.T) {
	upload := Image{Data: quadrants(t), ContentType: "image/png"}

	p, err := LocalExtractor{}.Extract(context.Background(), upload, TypeSolid)
	if err != nil {
		t.Fatalf("Extract(solid) error = %v", err)
	}
	if len(p.Colors) == 0 || len(p.Colors) > 8 {
		t.Fatalf("Expected 1-8 colors, got %v", p.Colors)
	}
	for _, c := range p.Colors {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("Expected #rrggbb color, got %q", c)
		}
	}

	g, err := LocalExtractor{}.Extract(context.Background(), upload, TypeGradient)
	if err != nil {
		t.Fatalf("Extract(gradient) error = %v", err)
	}
	if len(g.Gradients) == 0 || len(g.Gradients) > 4 {
		t.Fatalf("Expected 1-4 gradient pairs, got %v", g.Gradients)
	}

	if _, err := (LocalExtractor{}).Extract(context.Background(), Image{Data: []byte("nope")}, TypeSolid); err == nil {
		t.Error("Expected decode error for non-image upload")
	}
}

func TestPairExtremes(t *testing.T) {
	hex := func(s string) colorful.Color {
		c, err := colorful.Hex(s)
		if err != nil {
			t.Fatal(err)
		}
		return c
	}

	pairs := pairExtremes([]colorful.Color{hex("#808080"), hex("#ffffff"), hex("#000000"), hex("#404040")}, 4)
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %v", pairs)
	}
	if pairs[0].Start != "#000000" || pairs[0].End != "#ffffff" {
		t.Errorf("Expected darkest paired with lightest, got %+v", pairs[0])
	}
	if pairs[1].Start != "#404040" || pairs[1].End != "#808080" {
		t.Errorf("Unexpected second pair %+v", pairs[1])
	}

	single := pairExtremes([]colorful.Color{hex("#000000")}, 4)
	if len(single) != 1 || single[0].Start != "#000000" || single[0].End == "#000000" {
		t.Errorf("Expected single color paired with a lighter blend, got %v", single)
	}
}

type stubExtractor struct {
	palette Palette
	err     error
	check   error
}

func (s stubExtractor) Name() string { return "stub" }
func (s stubExtractor) Check() error { return s.check }
func (s stubExtractor) Extract(ctx context.Context, img Image, t Type) (Palette, error) {
	return s.palette, s.err
}

type memRecorder struct {
	kinds []string
	err   error
}

func (m *memRecorder) Record(ctx context.Context, kind, source, model string, colors any) error {
	m.kinds = append(m.kinds, kind)
	return m.err
}

func TestServicePublishesResults(t *testing.T) {
	custom := presets.NewCustomPalette(0)
	rec := &memRecorder{}
	svc := NewService(stubExtractor{palette: Palette{Type: TypeSolid, Colors: eight, Source: "stub"}}, custom, rec)

	p, err := svc.Extract(context.Background(), jpegUpload, TypeSolid)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(p.Colors) != 8 {
		t.Errorf("Expected 8 colors, got %d", len(p.Colors))
	}
	if got := custom.Colors(); len(got) != 8 || got[0] != "#aaa111" {
		t.Errorf("Expected custom palette to receive colors, got %v", got)
	}
	if len(rec.kinds) != 1 || rec.kinds[0] != "solid" {
		t.Errorf("Expected one solid record, got %v", rec.kinds)
	}

	gsvc := NewService(stubExtractor{palette: Palette{Type: TypeGradient, Gradients: []GradientPair{{Start: "#000", End: "#fff"}}}}, custom, nil)
	if _, err := gsvc.Extract(context.Background(), jpegUpload, TypeGradient); err != nil {
		t.Fatal(err)
	}
	if len(custom.Gradients()) != 1 {
		t.Errorf("Expected gradient added to custom palette, got %v", custom.Gradients())
	}
}

func TestServiceErrors(t *testing.T) {
	custom := presets.NewCustomPalette(0)

	failing := NewService(stubExtractor{err: &ParseError{Raw: "??"}}, custom, nil)
	_, err := failing.Extract(context.Background(), jpegUpload, TypeSolid)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Expected ParseError, got %v", err)
	}
	if len(custom.Colors()) != 0 {
		t.Error("Failed extraction must not touch the custom palette")
	}

	unconfigured := NewService(stubExtractor{check: ErrMissingCredential}, custom, nil)
	if err := unconfigured.Check(); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Check() = %v", err)
	}
	if _, err := unconfigured.Extract(context.Background(), jpegUpload, TypeSolid); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Expected ErrMissingCredential, got %v", err)
	}

	ok := NewService(stubExtractor{}, custom, nil)
	if _, err := ok.Extract(context.Background(), Image{}, TypeSolid); !errors.Is(err, ErrMissingImage) {
		t.Errorf("Expected ErrMissingImage, got %v", err)
	}

	recorderDown := NewService(stubExtractor{palette: Palette{Type: TypeSolid, Colors: eight}}, nil, &memRecorder{err: errors.New("db down")})
	if _, err := recorderDown.Extract(context.Background(), jpegUpload, TypeSolid); err != nil {
		t.Errorf("History failure should not fail extraction, got %v", err)
	}
}

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{mode: "", want: "model"},
		{mode: "model", want: "model"},
		{mode: "local", want: "local"},
		{mode: "magic", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			ex, err := NewExtractor(Config{Mode: tt.mode})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExtractor(%q) error = %v", tt.mode, err)
			}
			if err == nil && ex.Name() != tt.want {
				t.Errorf("Name() = %s, want %s", ex.Name(), tt.want)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("COLOR_EXTRACTOR", "LOCAL")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("AI_MODEL", "")

	cfg := ConfigFromEnv()
	if cfg.Mode != "local" || cfg.Timeout.Seconds() != 5 || cfg.Model != DefaultModel {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}
