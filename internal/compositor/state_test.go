package compositor

import (
	"errors"
	"image/color"
	"testing"

	"github.com/fogleman/gg"
)

func TestScopedRestoresClip(t *testing.T) {
	black := color.RGBA{A: 255}

	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"error", errors.New("stage failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := gg.NewContext(20, 20)
			err := scoped(dc, func() error {
				dc.DrawRectangle(0, 0, 5, 5)
				dc.Clip()
				dc.Translate(3, 3)
				return tt.err
			})
			if !errors.Is(err, tt.err) {
				t.Fatalf("scoped() error = %v, want %v", err, tt.err)
			}

			dc.SetColor(black)
			dc.DrawRectangle(0, 0, 20, 20)
			dc.Fill()

			img := dc.Image()
			if got := color.RGBAModel.Convert(img.At(15, 15)); got != black {
				t.Errorf("pixel outside the scoped clip = %v, want %v", got, black)
			}
			if got := color.RGBAModel.Convert(img.At(0, 0)); got != black {
				t.Errorf("pixel (0,0) = %v, want %v (transform leaked)", got, black)
			}
		})
	}
}

func TestScopedRestoresStateAfterPanic(t *testing.T) {
	dc := gg.NewContext(10, 10)
	func() {
		defer func() { _ = recover() }()
		_ = scoped(dc, func() error {
			dc.DrawRectangle(0, 0, 2, 2)
			dc.Clip()
			panic("boom")
		})
	}()

	dc.SetColor(color.White)
	dc.DrawRectangle(0, 0, 10, 10)
	dc.Fill()
	if _, _, _, a := dc.Image().At(8, 8).RGBA(); a != 0xffff {
		t.Errorf("Expected fill after panic to cover the canvas, alpha = %d", a)
	}
}
