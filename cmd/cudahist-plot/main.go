// Command cudahist-plot renders histograms of CUDA kernel execution times and
// coins found per kernel run, as images or as an HTML page.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/deticoin/cudahist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type plotTool struct {
	cudahist.Tool
	format   string
	timeOut  string
	coinsOut string
	htmlOut  string
	width    string
	height   string
	bins     int
}

func newRootCmd() *cobra.Command {
	var t plotTool
	cmd := &cobra.Command{
		Use:          "cudahist-plot [data file]",
		Short:        "Plot histograms of CUDA kernel times and coins found",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			t.Stdout = cmd.OutOrStdout()
			if err := t.Init(); err != nil {
				return err
			}
			t.applyFlags(cmd)
			if t.format != "image" && t.format != "html" {
				return fmt.Errorf("unknown plot format %q", t.format)
			}
			return t.Config.Validate()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			t.Close()
		},
		RunE: t.run,
	}
	t.BindFlags(cmd.PersistentFlags())
	fs := cmd.Flags()
	fs.StringVar(&t.format, "format", "image", "plot backend (image, html)")
	fs.StringVar(&t.timeOut, "time-out", "", "kernel time histogram output file")
	fs.StringVar(&t.coinsOut, "coins-out", "", "coins found histogram output file")
	fs.StringVar(&t.htmlOut, "html-out", "", "HTML output file for -format html")
	fs.StringVar(&t.width, "width", "", "plot width (e.g. 12in, 30cm)")
	fs.StringVar(&t.height, "height", "", "plot height")
	fs.IntVar(&t.bins, "bins", 0, "number of kernel time bins")
	return cmd
}

// applyFlags overrides config settings with the flags that were given.
func (t *plotTool) applyFlags(cmd *cobra.Command) {
	pc := &t.Config.Plot
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("time-out", &pc.TimeOut, t.timeOut)
	set("coins-out", &pc.CoinsOut, t.coinsOut)
	set("html-out", &pc.HTMLOut, t.htmlOut)
	set("width", &pc.Width, t.width)
	set("height", &pc.Height, t.height)
	if cmd.Flags().Changed("bins") {
		pc.Bins = t.bins
	}
}

func (t *plotTool) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "CUDA Histogram Generator")
	fmt.Fprintln(out, rule)

	sets, err := t.Load(cmd.Context(), args)
	if err != nil {
		cudahist.PrintLoadHelp(cmd.ErrOrStderr(), err)
		return err
	}
	ds := sets[0]
	fmt.Fprintf(out, "Loaded %d kernel execution records\n", ds.Len())
	if ds.Empty() {
		fmt.Fprintln(out, "No data to process!")
		return nil
	}
	ts, err := cudahist.ComputeTimeStats(ds.Times)
	if err != nil {
		return err
	}
	cs, err := cudahist.ComputeCoinStats(ds.Coins)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nGenerating histograms...")
	var files []string
	switch t.format {
	case "html":
		if err := saveHTML(t.Config.Plot.HTMLOut, ds, ts, cs, t.Config.Plot.Bins); err != nil {
			return err
		}
		files = append(files, t.Config.Plot.HTMLOut)
	default:
		pc := t.Config.Plot
		if err := saveTimePlot(pc, ds, ts); err != nil {
			return err
		}
		if err := saveCoinPlot(pc, cs); err != nil {
			return err
		}
		files = append(files, pc.TimeOut, pc.CoinsOut)
	}
	for _, f := range files {
		t.Log.Debug("Saved plot", zap.String("path", f))
		fmt.Fprintf(out, "Saved: %s\n", f)
	}
	printSummary(out, ts, cs)

	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Histogram generation complete!")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Generated files:")
	for i, f := range files {
		fmt.Fprintf(out, "  %d. %s\n", i+1, f)
	}
	return nil
}
