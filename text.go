package cudahist

import (
	"fmt"
	"io"
	"strings"
)

const (
	ruleWidth = 70
	barRune   = "█"
)

// TextRenderer prints ASCII bar histograms.
type TextRenderer struct {
	W        io.Writer
	BarWidth int // length of the longest bar in characters
	MinBins  int // time histogram bin limits, see BinCount
	MaxBins  int
}

// NewTextRenderer creates a renderer with the settings from cfg.
func NewTextRenderer(w io.Writer, cfg TextConfig) *TextRenderer {
	return &TextRenderer{W: w, BarWidth: cfg.BarWidth, MinBins: cfg.MinBins, MaxBins: cfg.MaxBins}
}

func (r *TextRenderer) banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(r.W, rule)
	fmt.Fprintln(r.W, title)
	fmt.Fprintln(r.W, rule)
}

func (r *TextRenderer) bar(count, maxCount int) string {
	return strings.Repeat(barRune, BarLength(count, maxCount, r.BarWidth))
}

// WriteTimeHistogram prints the kernel execution time statistics and histogram.
func (r *TextRenderer) WriteTimeHistogram(ds *Dataset) error {
	ts, err := ComputeTimeStats(ds.Times)
	if err == ErrNoData {
		return nil
	} else if err != nil {
		return err
	}
	r.banner("HISTOGRAM 1: CUDA Kernel Execution Time Distribution")
	fmt.Fprintf(r.W, "\nStatistics:\n")
	fmt.Fprintf(r.W, "  Total kernel runs: %d\n", ts.N)
	fmt.Fprintf(r.W, "  Mean time:         %.3f ms\n", ts.Mean)
	fmt.Fprintf(r.W, "  Median time:       %.3f ms\n", ts.Median)
	fmt.Fprintf(r.W, "  Std deviation:     %.3f ms\n", ts.StdDev)
	fmt.Fprintf(r.W, "  Min time:          %.3f ms\n", ts.Min)
	fmt.Fprintf(r.W, "  Max time:          %.3f ms\n", ts.Max)

	h := BinTimes(ds.Times, BinCount(ts.N, r.MinBins, r.MaxBins))
	fmt.Fprintf(r.W, "\nDistribution (bin width: %.3f ms):\n\n", h.Width)
	for _, b := range h.Bins {
		fmt.Fprintf(r.W, "%7.2f-%7.2f ms | %s %d\n", b.Lo, b.Hi, r.bar(b.Count, h.MaxCount), b.Count)
	}
	_, err = fmt.Fprintln(r.W)
	return err
}

// WriteCoinHistogram prints the coins-found statistics and one bar per coin count.
func (r *TextRenderer) WriteCoinHistogram(ds *Dataset) error {
	cs, err := ComputeCoinStats(ds.Coins)
	if err == ErrNoData {
		return nil
	} else if err != nil {
		return err
	}
	r.banner("HISTOGRAM 2: DETI Coins Found per Kernel Run")
	fmt.Fprintf(r.W, "\nStatistics:\n")
	fmt.Fprintf(r.W, "  Total kernel runs:   %d\n", cs.Runs)
	fmt.Fprintf(r.W, "  Total coins found:   %d\n", cs.Total)
	fmt.Fprintf(r.W, "  Runs with 0 coins:   %d (%.2f%%)\n", cs.Zero, cs.ZeroPercent())
	fmt.Fprintf(r.W, "  Runs with ≥1 coin:   %d (%.2f%%)\n", cs.WithCoins, cs.SuccessPercent())
	fmt.Fprintf(r.W, "  Avg coins per run:   %.6f\n", cs.AvgPerRun())
	if avg, ok := cs.AvgWhenFound(); ok {
		fmt.Fprintf(r.W, "  Avg (when >0):       %.3f\n", avg)
	}

	maxCount := 0
	for _, n := range cs.Counts {
		if n > maxCount {
			maxCount = n
		}
	}
	fmt.Fprintf(r.W, "\nDistribution:\n\n")
	for k, n := range cs.Counts {
		fmt.Fprintf(r.W, "%2d coins | %s %6d (%6.2f%%)\n", k, r.bar(n, maxCount), n, cs.Percent(k))
	}
	_, err = fmt.Fprintln(r.W)
	return err
}
