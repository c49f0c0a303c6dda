package main

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/deticoin/cudahist"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	timeFill  = color.NRGBA{R: 70, G: 130, B: 180, A: 178} // steel blue
	coinFill  = color.NRGBA{R: 255, G: 165, A: 178}        // orange
	meanColor = color.RGBA{R: 220, A: 255}
	medColor  = color.RGBA{G: 160, A: 255}
)

// headroom leaves space above the tallest bar for the statistics box.
const headroom = 1.45

func saveTimePlot(pc cudahist.PlotConfig, ds *cudahist.Dataset, ts cudahist.TimeStats) error {
	p, err := timePlot(ds.Times, ts, pc.Bins)
	if err != nil {
		return err
	}
	return savePlot(p, pc, pc.TimeOut)
}

func saveCoinPlot(pc cudahist.PlotConfig, cs cudahist.CoinStats) error {
	p, err := coinPlot(cs)
	if err != nil {
		return err
	}
	return savePlot(p, pc, pc.CoinsOut)
}

// timePlot builds the kernel execution time histogram with mean and median markers.
func timePlot(times []float64, ts cudahist.TimeStats, nbins int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "CUDA Kernel Execution Time Distribution"
	p.X.Label.Text = "Kernel Execution Time (ms)"
	p.Y.Label.Text = "Frequency (Number of Kernel Runs)"
	p.Add(plotter.NewGrid())

	h := cudahist.BinTimes(times, nbins)
	bins := make([]plotter.HistogramBin, len(h.Bins))
	for i, b := range h.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
	}
	if h.Width == 0 {
		// all samples are equal, draw one unit-wide bar around them
		bins[0].Min -= 0.5
		bins[0].Max += 0.5
	}
	p.Add(histogram(bins, h.Width, timeFill))

	top := float64(h.MaxCount) * headroom
	for _, m := range []struct {
		label string
		x     float64
		c     color.Color
	}{
		{fmt.Sprintf("Mean: %.2f ms", ts.Mean), ts.Mean, meanColor},
		{fmt.Sprintf("Median: %.2f ms", ts.Median), ts.Median, medColor},
	} {
		l, err := verticalLine(m.x, top, m.c)
		if err != nil {
			return nil, err
		}
		p.Add(l)
		p.Legend.Add(m.label, l)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Y.Min, p.Y.Max = 0, top

	box := []string{
		"Statistics:",
		fmt.Sprintf("Mean: %.3f ms", ts.Mean),
		fmt.Sprintf("Median: %.3f ms", ts.Median),
		fmt.Sprintf("Std Dev: %.3f ms", ts.StdDev),
		fmt.Sprintf("Min: %.3f ms", ts.Min),
		fmt.Sprintf("Max: %.3f ms", ts.Max),
		fmt.Sprintf("Total Runs: %d", ts.N),
	}
	if err := addStatsBox(p, box); err != nil {
		return nil, err
	}
	return p, nil
}

// coinPlot builds the coins-found histogram, one unit-wide bin per coin count.
func coinPlot(cs cudahist.CoinStats) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Distribution of DETI Coins Found per CUDA Kernel Run"
	p.X.Label.Text = "Number of Coins Found"
	p.Y.Label.Text = "Frequency (Number of Kernel Runs)"
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	var maxCount int
	bins := make([]plotter.HistogramBin, len(cs.Counts))
	for k, n := range cs.Counts {
		bins[k] = plotter.HistogramBin{Min: float64(k) - 0.5, Max: float64(k) + 0.5, Weight: float64(n)}
		if n > maxCount {
			maxCount = n
		}
	}
	p.Add(histogram(bins, 1, coinFill))
	p.X.Tick.Marker = plot.ConstantTicks(intTicks(cs.Max))
	p.Y.Min, p.Y.Max = 0, float64(maxCount)*headroom

	box := []string{
		"Statistics:",
		fmt.Sprintf("Total Kernel Runs: %d", cs.Runs),
		fmt.Sprintf("Total Coins Found: %d", cs.Total),
		fmt.Sprintf("Runs with 0 coins: %d", cs.Zero),
		fmt.Sprintf("Runs with ≥1 coin: %d", cs.WithCoins),
		fmt.Sprintf("Avg coins/run: %.4f", cs.AvgPerRun()),
	}
	if avg, ok := cs.AvgWhenFound(); ok {
		box = append(box, fmt.Sprintf("Avg (when >0): %.2f", avg))
	}
	if err := addStatsBox(p, box); err != nil {
		return nil, err
	}
	return p, nil
}

func histogram(bins []plotter.HistogramBin, width float64, fill color.Color) *plotter.Histogram {
	return &plotter.Histogram{
		Bins:      bins,
		Width:     width,
		FillColor: fill,
		LineStyle: plotter.DefaultLineStyle,
	}
}

func verticalLine(x, height float64, c color.Color) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: height}})
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(2)
	l.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	return l, nil
}

// addStatsBox puts the lines in the top right corner of the data area.
// The axis ranges must be final when this is called.
func addStatsBox(p *plot.Plot, lines []string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: p.X.Max, Y: p.Y.Max}},
		Labels: []string{strings.Join(lines, "\n")},
	})
	if err != nil {
		return err
	}
	l.TextStyle[0].XAlign = text.XRight
	l.TextStyle[0].YAlign = text.YTop
	l.TextStyle[0].Font.Size = vg.Points(9)
	l.Offset = vg.Point{X: -vg.Points(6), Y: -vg.Points(6)}
	p.Add(l)
	return nil
}

// intTicks labels the integers 0..max, thinning the labels out for large ranges.
func intTicks(max int) []plot.Tick {
	const maxLabels = 20
	step := int(math.Ceil(float64(max+1) / maxLabels))
	if step < 1 {
		step = 1
	}
	var ticks []plot.Tick
	for k := 0; k <= max; k++ {
		t := plot.Tick{Value: float64(k)}
		if k%step == 0 {
			t.Label = fmt.Sprint(k)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// savePlot writes p to file. The format follows the file extension; PNG
// output is rendered at the configured resolution.
func savePlot(p *plot.Plot, pc cudahist.PlotConfig, file string) error {
	w, err := cudahist.ParseLength(pc.Width)
	if err != nil {
		return err
	}
	h, err := cudahist.ParseLength(pc.Height)
	if err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(file), ".png") {
		return p.Save(w, h, file)
	}

	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(pc.DPI))
	p.Draw(draw.New(c))
	fd, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(fd); err != nil {
		fd.Close()
		return fmt.Errorf("%s: %w", file, err)
	}
	return fd.Close()
}

func printSummary(w io.Writer, ts cudahist.TimeStats, cs cudahist.CoinStats) {
	fmt.Fprintf(w, "  Mean time: %.3f ms\n", ts.Mean)
	fmt.Fprintf(w, "  Median time: %.3f ms\n", ts.Median)
	fmt.Fprintf(w, "  Std deviation: %.3f ms\n", ts.StdDev)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total coins found: %d\n", cs.Total)
	fmt.Fprintf(w, "  Kernel runs: %d\n", cs.Runs)
	fmt.Fprintf(w, "  Runs with coins: %d (%.2f%%)\n", cs.WithCoins, cs.SuccessPercent())
	fmt.Fprintf(w, "  Average coins per run: %.4f\n", cs.AvgPerRun())
}
