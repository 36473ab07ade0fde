// Package heuristic flags images whose channel statistics suggest the
// channels hold unrelated masks rather than a coherent colour image.
package heuristic

import (
	"math"

	"github.com/lepinkainen/texturetool/texture"
)

// Histogram holds one 256-bin histogram per band.
type Histogram [][256]int

// NewHistogram builds per-band histograms. The band count follows the
// buffer's layout: 1 for L, 2 for LA, 3 for RGB, 4 for RGBA.
func NewHistogram(buf *texture.PixelBuffer) Histogram {
	channels := buf.Layout.Channels()
	hist := make(Histogram, len(channels))
	pix := buf.NRGBA().Pix
	for i := 0; i+3 < len(pix); i += 4 {
		for b, c := range channels {
			hist[b][pix[i+int(c)]]++
		}
	}
	return hist
}

// Stats are per-band histogram statistics.
type Stats struct {
	Count  []int
	Mean   []float64
	Var    []float64
	Stddev []float64
	Median []float64
	Mode   []float64
}

// Compute derives per-band statistics from h. The median is the first bin
// whose running total exceeds half the count.
func Compute(h Histogram) Stats {
	n := len(h)
	s := Stats{
		Count:  make([]int, n),
		Mean:   make([]float64, n),
		Var:    make([]float64, n),
		Stddev: make([]float64, n),
		Median: make([]float64, n),
		Mode:   make([]float64, n),
	}
	for b, bins := range h {
		var count, sum, sum2 float64
		mode := 0
		for v, c := range bins {
			fc := float64(c)
			count += fc
			sum += float64(v) * fc
			sum2 += float64(v*v) * fc
			if c > bins[mode] {
				mode = v
			}
		}
		s.Count[b] = int(count)
		s.Mode[b] = float64(mode)
		if count == 0 {
			continue
		}
		s.Mean[b] = sum / count
		s.Var[b] = math.Max(sum2/count-s.Mean[b]*s.Mean[b], 0)
		s.Stddev[b] = math.Sqrt(s.Var[b])

		half := int(count) / 2
		running := 0
		for v, c := range bins {
			running += c
			if running > half {
				s.Median[b] = float64(v)
				break
			}
		}
	}
	return s
}

// StatsOf is NewHistogram followed by Compute.
func StatsOf(buf *texture.PixelBuffer) Stats {
	return Compute(NewHistogram(buf))
}

// normalize scales v to unit L2 norm. ok is false for an all-zero vector.
func normalize(v []float64) (out []float64, ok bool) {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil, false
	}
	out = make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out, true
}

func minMax(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}
