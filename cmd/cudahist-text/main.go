// Command cudahist-text prints text histograms of a CUDA miner kernel log and
// writes a flat text report. It needs no graphics support.
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

type textTool struct {
	cudahist.Tool
	report   string
	barWidth int
}

func newRootCmd() *cobra.Command {
	var t textTool
	cmd := &cobra.Command{
		Use:          "cudahist-text [data file]",
		Short:        "Print text histograms of CUDA kernel times and coins found",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			t.Stdout = cmd.OutOrStdout()
			if err := t.Init(); err != nil {
				return err
			}
			if cmd.Flags().Changed("report") {
				t.Config.Report = t.report
			}
			if cmd.Flags().Changed("bar-width") {
				t.Config.Text.BarWidth = t.barWidth
			}
			return t.Config.Validate()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			t.Close()
		},
		RunE: t.run,
	}
	t.BindFlags(cmd.PersistentFlags())
	cmd.Flags().StringVar(&t.report, "report", cudahist.DefaultReportFile, "report output file (empty to skip)")
	cmd.Flags().IntVar(&t.barWidth, "bar-width", 50, "length of the longest bar in characters")
	return cmd
}

func (t *textTool) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "CUDA HISTOGRAM GENERATOR (Text-based)")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)

	sets, err := t.Load(cmd.Context(), args)
	if err != nil {
		cudahist.PrintLoadHelp(cmd.ErrOrStderr(), err)
		return err
	}
	ds := sets[0]
	if ds.Empty() {
		fmt.Fprintln(out, "No data to process!")
		return nil
	}
	fmt.Fprintf(out, "Loaded %d kernel execution records\n\n", ds.Len())

	r := cudahist.NewTextRenderer(out, t.Config.Text)
	if err := r.WriteTimeHistogram(ds); err != nil {
		return err
	}
	if err := r.WriteCoinHistogram(ds); err != nil {
		return err
	}
	if t.Config.Report != "" {
		if err := cudahist.WriteReportFile(t.Config.Report, ds); err != nil {
			return fmt.Errorf("can't write report: %w", err)
		}
		t.Log.Debug("Report saved", zap.String("path", t.Config.Report))
		fmt.Fprintf(out, "Report saved to: %s\n", t.Config.Report)
	}

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "COMPLETE!")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "\nFor graphical histograms run:")
	fmt.Fprintln(out, "  cudahist-plot")
	return nil
}
