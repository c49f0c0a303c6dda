package cudahist

import "math"

// Bin is one bucket of a time histogram covering [Lo, Hi).
// The last bin of a histogram also includes Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram is an equal-width binning of kernel times.
type Histogram struct {
	Width    float64
	Bins     []Bin
	MaxCount int
}

// BinCount picks the number of text histogram bins for n samples:
// n/2, but no more than maxBins and no less than minBins.
func BinCount(n, minBins, maxBins int) int {
	b := n / 2
	if b > maxBins {
		b = maxBins
	}
	if b < minBins {
		b = minBins
	}
	return b
}

// BinTimes sorts times into nbins equal-width bins spanning [min, max].
// When the span is zero, or too small to split into nbins, the result is a
// single bin holding every sample.
func BinTimes(times []float64, nbins int) Histogram {
	if len(times) == 0 || nbins <= 0 {
		return Histogram{}
	}
	lo, hi := times[0], times[0]
	for _, t := range times[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	n := float64(nbins)
	width := (hi - lo) / n
	if math.IsInf(width, 0) {
		width = hi/n - lo/n
	}
	if hi == lo || width == 0 {
		return Histogram{
			Bins:     []Bin{{Lo: lo, Hi: hi, Count: len(times)}},
			MaxCount: len(times),
		}
	}

	h := Histogram{Width: width, Bins: make([]Bin, nbins)}
	for i := range h.Bins {
		h.Bins[i].Lo = lo + float64(i)*h.Width
		h.Bins[i].Hi = h.Bins[i].Lo + h.Width
	}
	h.Bins[nbins-1].Hi = hi
	for _, t := range times {
		h.Bins[binIndex(t, lo, width, nbins)].Count++
	}
	for _, b := range h.Bins {
		if b.Count > h.MaxCount {
			h.MaxCount = b.Count
		}
	}
	return h
}

// binIndex returns the bin of t, clamped to [0, nbins-1].
func binIndex(t, lo, width float64, nbins int) int {
	pos := (t - lo) / width
	if math.IsInf(t-lo, 0) {
		// spans beyond MaxFloat64 overflow, their halves don't
		pos = (t/2 - lo/2) / (width / 2)
	}
	if math.IsNaN(pos) || pos <= 0 {
		return 0
	}
	if pos >= float64(nbins) {
		return nbins - 1
	}
	return int(pos)
}

// BarLength scales count to a bar of at most width characters.
func BarLength(count, maxCount, width int) int {
	if maxCount <= 0 {
		return 0
	}
	return int(float64(count) / float64(maxCount) * float64(width))
}
