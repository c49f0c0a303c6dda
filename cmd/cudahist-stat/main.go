// Command cudahist-stat prints a comparison table of one or more CUDA miner
// kernel logs, or of all runs in an archive.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/deticoin/cudahist"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type statTool struct {
	cudahist.Tool
	archive string
}

func newRootCmd() *cobra.Command {
	var t statTool
	cmd := &cobra.Command{
		Use:          "cudahist-stat [data file...]",
		Short:        "Summarize CUDA kernel logs in a table",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			t.Stdout = cmd.OutOrStdout()
			return t.Init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			t.Close()
		},
		RunE: t.run,
	}
	t.BindFlags(cmd.PersistentFlags())
	cmd.Flags().StringVar(&t.archive, "archive", "", "summarize all runs of this archive instead of files")
	return cmd
}

func (t *statTool) run(cmd *cobra.Command, args []string) error {
	var (
		sets []*cudahist.Dataset
		err  error
	)
	if t.archive != "" {
		if len(args) > 0 {
			return fmt.Errorf("data files can't be combined with --archive")
		}
		sets, err = t.loadArchive()
	} else {
		sets, err = t.Load(cmd.Context(), args)
		if err != nil {
			cudahist.PrintLoadHelp(cmd.ErrOrStderr(), err)
		}
	}
	if err != nil {
		return err
	}
	return writeTable(cmd.OutOrStdout(), sets)
}

func (t *statTool) loadArchive() ([]*cudahist.Dataset, error) {
	a, err := cudahist.OpenArchive(t.archive)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.All()
}

// writeTable prints one row per dataset. Empty datasets are listed without statistics.
func writeTable(w io.Writer, sets []*cudahist.Dataset) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Runs", "Mean ms", "Median ms", "Std Dev ms", "Min ms", "Max ms", "Coins", "Success %"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	for _, ds := range sets {
		row, err := statRow(ds)
		if err != nil {
			return err
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func statRow(ds *cudahist.Dataset) ([]string, error) {
	if ds.Empty() {
		return []string{ds.Name, "0", "-", "-", "-", "-", "-", "-", "-"}, nil
	}
	ts, err := cudahist.ComputeTimeStats(ds.Times)
	if err != nil {
		return nil, err
	}
	cs, err := cudahist.ComputeCoinStats(ds.Coins)
	if err != nil {
		return nil, err
	}
	return []string{
		ds.Name,
		fmt.Sprint(ts.N),
		fmt.Sprintf("%.3f", ts.Mean),
		fmt.Sprintf("%.3f", ts.Median),
		fmt.Sprintf("%.3f", ts.StdDev),
		fmt.Sprintf("%.3f", ts.Min),
		fmt.Sprintf("%.3f", ts.Max),
		fmt.Sprint(cs.Total),
		fmt.Sprintf("%.4f", cs.SuccessPercent()),
	}, nil
}
