package extraction

import (
	"context"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/rmitchellscott/orangesnap/internal/imageprocessing"
)

const (
	solidCount    = 8
	gradientCount = 4
	sampleSide    = 256
	maxSamples    = 12000
)

// LocalExtractor derives palettes from the pixels without any remote call.
type LocalExtractor struct{}

func (LocalExtractor) Name() string { return "local" }

func (LocalExtractor) Check() error { return nil }

// Extract decodes the upload and picks diverse dominant colors. Gradients pair
// the darkest remaining color with the lightest.
func (l LocalExtractor) Extract(ctx context.Context, img Image, t Type) (Palette, error) {
	if len(img.Data) == 0 {
		return Palette{}, ErrMissingImage
	}
	decoded, _, err := imageprocessing.DecodeBytes(img.Data)
	if err != nil {
		return Palette{}, err
	}
	if err := ctx.Err(); err != nil {
		return Palette{}, err
	}

	colors := localPalette(imageprocessing.ResizeToFit(decoded, sampleSide), solidCount)
	p := Palette{Type: t, Source: l.Name()}
	if t == TypeGradient {
		p.Gradients = pairExtremes(colors, gradientCount)
		return p, nil
	}
	for _, c := range colors {
		p.Colors = append(p.Colors, c.Hex())
	}
	return p, nil
}

type weighted struct {
	col    colorful.Color
	weight float64
}

// localPalette prefers dominantcolor's weighted candidates and falls back to
// k-means clustering when too few distinct colors come back.
func localPalette(img image.Image, k int) []colorful.Color {
	var cands []weighted
	for _, c := range dominantcolor.FindWeight(img, max(24, k*3)) {
		col, ok := colorful.MakeColor(c.RGBA)
		if !ok {
			continue
		}
		cands = append(cands, weighted{col: col.Clamped(), weight: c.Weight})
	}
	if len(cands) < k {
		cands = append(cands, kmeansCandidates(img, k)...)
	}
	if len(cands) == 0 {
		cands = append(cands, weighted{col: colorful.Color{R: 0.5, G: 0.5, B: 0.5}, weight: 1})
	}
	return selectDiverse(cands, k)
}

func kmeansCandidates(img image.Image, k int) []weighted {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	var obs clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			obs = append(obs, clusters.Coordinates{float64(r) / 0xffff, float64(g) / 0xffff, float64(bl) / 0xffff})
		}
	}
	if len(obs) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(obs, min(k, len(obs)))
	if err != nil {
		return nil
	}

	out := make([]weighted, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		out = append(out, weighted{col: col, weight: float64(len(c.Observations))})
	}
	return out
}

// selectDiverse seeds with the heaviest candidate and then greedily adds the
// candidate farthest in Lab space, biased by weight.
func selectDiverse(cands []weighted, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	maxW := 0.0
	seed := 0
	for i, c := range cands {
		if c.weight > maxW {
			maxW, seed = c.weight, i
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	chosen := []int{seed}
	taken := make([]bool, len(cands))
	taken[seed] = true

	for len(chosen) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if taken[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, j := range chosen {
				nearest = min(nearest, c.col.DistanceLab(cands[j].col))
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(max(c.weight, 1e-6)/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		chosen = append(chosen, best)
	}

	out := make([]colorful.Color, 0, len(chosen))
	for _, i := range chosen {
		out = append(out, cands[i].col)
	}
	return out
}

// luminance is relative luminance in linear RGB.
func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// pairExtremes sorts by luminance and pairs the i-th darkest with the i-th
// lightest. A single color is paired with a lighter blend of itself.
func pairExtremes(colors []colorful.Color, n int) []GradientPair {
	sorted := slices.Clone(colors)
	slices.SortFunc(sorted, func(a, b colorful.Color) int {
		la, lb := luminance(a), luminance(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})

	if len(sorted) == 1 {
		white, _ := colorful.MakeColor(color.White)
		return []GradientPair{{Start: sorted[0].Hex(), End: sorted[0].BlendLab(white, 0.5).Clamped().Hex()}}
	}

	var pairs []GradientPair
	for i := 0; i < len(sorted)/2 && len(pairs) < n; i++ {
		pairs = append(pairs, GradientPair{
			Start: sorted[i].Hex(),
			End:   sorted[len(sorted)-1-i].Hex(),
		})
	}
	return pairs
}
