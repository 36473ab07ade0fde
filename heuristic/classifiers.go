package heuristic

import (
	"math"
	"strconv"
	"strings"

	"github.com/lepinkainen/texturetool/texture"
)

// Test is a classifier verdict for one decoded image at a threshold.
type Test func(buf *texture.PixelBuffer, threshold float64) bool

// Classifier pairs a verdict with the directory stem its matches go to.
type Classifier struct {
	Name string
	Test Test
}

// OutputSuffix returns the directory suffix for matches at threshold,
// e.g. "_mean_range_0-5".
func (c Classifier) OutputSuffix(threshold float64) string {
	return "_" + c.Name + "_" + FormatThreshold(threshold)
}

// FormatThreshold renders a threshold the way the directory names expect:
// always with a fractional part, and '.' replaced by '-' (0.5 -> "0-5",
// 1 -> "1-0").
func FormatThreshold(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return strings.ReplaceAll(s, ".", "-")
}

// Classifiers lists every classifier by its command name.
var Classifiers = []Classifier{
	{Name: "variance_range", Test: VarianceRange},
	{Name: "mean_range", Test: MeanRange},
	{Name: "stddev_mean", Test: StddevOverMean},
	{Name: "median_mean", Test: MedianOverMean},
	{Name: "mode_mean", Test: ModeOverMean},
	{Name: "f_test", Test: FTest},
	{Name: "unique_colors", Test: UniqueColorCount},
}

// VarianceRange is true when the spread of L2-normalised per-band variances
// reaches threshold.
func VarianceRange(buf *texture.PixelBuffer, threshold float64) bool {
	return rangeAtLeast(StatsOf(buf).Var, threshold)
}

// MeanRange is true when the spread of L2-normalised per-band means reaches
// threshold.
func MeanRange(buf *texture.PixelBuffer, threshold float64) bool {
	return rangeAtLeast(StatsOf(buf).Mean, threshold)
}

// FTest compares the ratio of the largest to the smallest normalised
// variance against threshold. A zero smallest variance gives +Inf.
func FTest(buf *texture.PixelBuffer, threshold float64) bool {
	norm, ok := normalize(StatsOf(buf).Var)
	if !ok {
		return false
	}
	lo, hi := minMax(norm)
	ratio := math.Inf(1)
	if lo > 0 {
		ratio = hi / lo
	}
	return ratio >= threshold
}

// StddevOverMean is true when any band's stddev/mean pair passes RatioBands.
func StddevOverMean(buf *texture.PixelBuffer, threshold float64) bool {
	s := StatsOf(buf)
	return anyTrue(RatioBands(s.Stddev, s.Mean, threshold))
}

// MedianOverMean is true when any band's median/mean pair passes RatioBands.
func MedianOverMean(buf *texture.PixelBuffer, threshold float64) bool {
	s := StatsOf(buf)
	return anyTrue(RatioBands(s.Median, s.Mean, threshold))
}

// ModeOverMean is true when any band's mode/mean pair passes RatioBands.
func ModeOverMean(buf *texture.PixelBuffer, threshold float64) bool {
	s := StatsOf(buf)
	return anyTrue(RatioBands(s.Mode, s.Mean, threshold))
}

// RatioBands orders each band's pair of statistics by magnitude and reports
// whether the smaller exceeds threshold times the larger.
func RatioBands(a, b []float64, threshold float64) []bool {
	out := make([]bool, len(a))
	for i := range a {
		lo, hi := math.Min(a[i], b[i]), math.Max(a[i], b[i])
		out[i] = lo > threshold*hi
	}
	return out
}

// UniqueColorCount is true when the image has more distinct RGB colours than
// threshold, which is read as an integer cutoff.
func UniqueColorCount(buf *texture.PixelBuffer, threshold float64) bool {
	return float64(UniqueColors(buf)) > threshold
}

func rangeAtLeast(v []float64, threshold float64) bool {
	norm, ok := normalize(v)
	if !ok {
		return false
	}
	lo, hi := minMax(norm)
	return hi-lo >= threshold
}

func anyTrue(v []bool) bool {
	for _, b := range v {
		if b {
			return true
		}
	}
	return false
}
