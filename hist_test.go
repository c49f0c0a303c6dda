package cudahist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinCount(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 5},
		{3, 5},
		{10, 5},
		{12, 6},
		{40, 20},
		{1000, 20},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, BinCount(test.n, 5, 20), "n=%d", test.n)
	}
}

func TestBinTimes(t *testing.T) {
	h := BinTimes([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, 5)
	assert.InDelta(t, 2.0, h.Width, 1e-12)
	require.Len(t, h.Bins, 5)

	var counts []int
	for _, b := range h.Bins {
		counts = append(counts, b.Count)
	}
	// the maximum lands in the last bin
	assert.Equal(t, []int{2, 2, 2, 2, 2}, counts)
	assert.Equal(t, 2, h.MaxCount)
	assert.InDelta(t, 8.0, h.Bins[4].Lo, 1e-12)
	assert.InDelta(t, 10.0, h.Bins[4].Hi, 1e-12)
}

func TestBinTimesSkewed(t *testing.T) {
	h := BinTimes([]float64{1, 1, 1, 1, 5}, 4)
	require.Len(t, h.Bins, 4)
	assert.Equal(t, 4, h.Bins[0].Count)
	assert.Equal(t, 1, h.Bins[3].Count)
	assert.Equal(t, 4, h.MaxCount)
}

func TestBinTimesConstant(t *testing.T) {
	h := BinTimes([]float64{2.5, 2.5, 2.5}, 5)
	require.Len(t, h.Bins, 1)
	assert.Zero(t, h.Width)
	assert.Equal(t, Bin{Lo: 2.5, Hi: 2.5, Count: 3}, h.Bins[0])
}

func TestBinTimesEmpty(t *testing.T) {
	assert.Empty(t, BinTimes(nil, 5).Bins)
}

func TestBarLength(t *testing.T) {
	assert.Equal(t, 50, BarLength(10, 10, 50))
	assert.Equal(t, 25, BarLength(5, 10, 50))
	assert.Equal(t, 16, BarLength(1, 3, 50))
	assert.Equal(t, 0, BarLength(0, 10, 50))
	assert.Equal(t, 0, BarLength(3, 0, 50))
}

func TestBinTimesExtremeSpans(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		counts []int
	}{
		{"overflowing span", []float64{-1.7e308, 1.7e308}, []int{1, 0, 0, 0, 1}},
		{"overflowing span, middle", []float64{-math.MaxFloat64, 0, math.MaxFloat64}, []int{1, 0, 1, 0, 1}},
		{"underflowing width", []float64{0, math.SmallestNonzeroFloat64}, []int{2}},
		{"one ulp span", []float64{1, math.Nextafter(1, 2)}, []int{1, 0, 0, 0, 1}},
	}
	for _, test := range tests {
		h := BinTimes(test.in, 5)
		var counts []int
		for _, b := range h.Bins {
			counts = append(counts, b.Count)
		}
		assert.Equal(t, test.counts, counts, test.name)
		assert.False(t, math.IsInf(h.Width, 0) || math.IsNaN(h.Width), test.name)
	}
}
