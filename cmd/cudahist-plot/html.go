package main

import (
	"fmt"
	"io"
	"os"

	"github.com/deticoin/cudahist"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func saveHTML(file string, ds *cudahist.Dataset, ts cudahist.TimeStats, cs cudahist.CoinStats, nbins int) error {
	fd, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := renderHTML(fd, ds, ts, cs, nbins); err != nil {
		fd.Close()
		return fmt.Errorf("%s: %w", file, err)
	}
	return fd.Close()
}

// renderHTML writes both histograms as interactive bar charts on one page.
func renderHTML(w io.Writer, ds *cudahist.Dataset, ts cudahist.TimeStats, cs cudahist.CoinStats, nbins int) error {
	page := components.NewPage()
	page.AddCharts(timeChart(ds.Times, ts, nbins), coinChart(cs))
	return page.Render(w)
}

func timeChart(times []float64, ts cudahist.TimeStats, nbins int) *charts.Bar {
	h := cudahist.BinTimes(times, nbins)
	labels := make([]string, len(h.Bins))
	data := make([]opts.BarData, len(h.Bins))
	for i, b := range h.Bins {
		labels[i] = fmt.Sprintf("%.2f-%.2f", b.Lo, b.Hi)
		data[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title: "CUDA Kernel Execution Time Distribution",
			Subtitle: fmt.Sprintf("Mean %.3f ms, Median %.3f ms, Std Dev %.3f ms, Min %.3f ms, Max %.3f ms, %d runs",
				ts.Mean, ts.Median, ts.StdDev, ts.Min, ts.Max, ts.N),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Kernel Execution Time (ms)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Kernel Runs"}),
	)
	bar.SetXAxis(labels).AddSeries("kernel runs", data)
	return bar
}

func coinChart(cs cudahist.CoinStats) *charts.Bar {
	labels := make([]string, len(cs.Counts))
	data := make([]opts.BarData, len(cs.Counts))
	for k, n := range cs.Counts {
		labels[k] = fmt.Sprint(k)
		data[k] = opts.BarData{Value: n}
	}
	sub := fmt.Sprintf("%d runs, %d coins, %d runs with ≥1 coin, %.4f coins/run",
		cs.Runs, cs.Total, cs.WithCoins, cs.AvgPerRun())
	if avg, ok := cs.AvgWhenFound(); ok {
		sub += fmt.Sprintf(", %.2f when >0", avg)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Distribution of DETI Coins Found per CUDA Kernel Run",
			Subtitle: sub,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Number of Coins Found"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Kernel Runs"}),
	)
	bar.SetXAxis(labels).AddSeries("kernel runs", data)
	return bar
}
