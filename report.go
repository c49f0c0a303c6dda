package cudahist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultReportFile is the name of the flat text report.
const DefaultReportFile = "cuda_histogram_report.txt"

// theoretical chance of a single hash being a coin (1 in 2^32)
const coinProbability = "~0.000000023% (1 in 2^32)"

// WriteReport writes a flat text summary of ds.
func WriteReport(w io.Writer, ds *Dataset) error {
	ts, err := ComputeTimeStats(ds.Times)
	if err != nil {
		return err
	}
	cs, err := ComputeCoinStats(ds.Coins)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "CUDA PERFORMANCE HISTOGRAM ANALYSIS\n")
	fmt.Fprintf(bw, "%s\n\n", strings.Repeat("=", ruleWidth))

	fmt.Fprintf(bw, "1. KERNEL EXECUTION TIME ANALYSIS\n")
	fmt.Fprintf(bw, "%s\n", strings.Repeat("-", ruleWidth))
	fmt.Fprintf(bw, "Mean execution time:    %.3f ms\n", ts.Mean)
	fmt.Fprintf(bw, "Median execution time:  %.3f ms\n", ts.Median)
	fmt.Fprintf(bw, "Min execution time:     %.3f ms\n", ts.Min)
	fmt.Fprintf(bw, "Max execution time:     %.3f ms\n", ts.Max)
	fmt.Fprintf(bw, "Total kernel runs:      %d\n\n", ts.N)

	fmt.Fprintf(bw, "2. COINS FOUND ANALYSIS\n")
	fmt.Fprintf(bw, "%s\n", strings.Repeat("-", ruleWidth))
	fmt.Fprintf(bw, "Total coins found:      %d\n", cs.Total)
	fmt.Fprintf(bw, "Kernels with 0 coins:   %d\n", cs.Zero)
	fmt.Fprintf(bw, "Kernels with ≥1 coin:   %d\n", cs.WithCoins)
	fmt.Fprintf(bw, "Success rate:           %.4f%%\n", cs.SuccessPercent())
	fmt.Fprintf(bw, "\nTheoretical probability: %s\n", coinProbability)
	return bw.Flush()
}

// WriteReportFile writes the report of ds to path, replacing any existing file.
func WriteReportFile(path string, ds *Dataset) error {
	if ds.Empty() {
		return ErrNoData
	}
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReport(fd, ds); err != nil {
		fd.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return fd.Close()
}
