// Command cudahist-archive keeps CUDA miner kernel logs in a leveldb archive so
// that runs of different miner builds can be compared later.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/deticoin/cudahist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type archiveTool struct {
	cudahist.Tool
	dir string
	now func() time.Time
}

func newRootCmd() *cobra.Command {
	t := &archiveTool{now: time.Now}
	root := &cobra.Command{
		Use:          "cudahist-archive",
		Short:        "Store and retrieve CUDA kernel logs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return t.Init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			t.Close()
		},
	}
	t.BindFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&t.dir, "dir", "cudahist.db", "archive database directory")

	var name string
	importCmd := &cobra.Command{
		Use:   "import <data file>...",
		Short: "Add data files to the archive, named after the file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name != "" && len(args) > 1 {
				return fmt.Errorf("--name can only be used with a single file")
			}
			return t.withArchive(func(a *cudahist.Archive) error {
				return t.importFiles(cmd, a, args, name)
			})
		},
	}
	importCmd.Flags().StringVar(&name, "name", "", "run name (default: file name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.withArchive(func(a *cudahist.Archive) error {
				runs, err := a.List()
				if err != nil {
					return err
				}
				for _, r := range runs {
					fmt.Fprintf(cmd.OutOrStdout(), "%-24s %8d runs  %s\n", r.Name, r.Runs, r.Imported.Format(time.RFC3339))
				}
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the text histograms of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.withArchive(func(a *cudahist.Archive) error {
				ds, err := a.Get(args[0])
				if err != nil {
					return err
				}
				r := cudahist.NewTextRenderer(cmd.OutOrStdout(), t.Config.Text)
				if err := r.WriteTimeHistogram(ds); err != nil {
					return err
				}
				return r.WriteCoinHistogram(ds)
			})
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write an archived run in data file format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.withArchive(func(a *cudahist.Archive) error {
				ds, err := a.Get(args[0])
				if err != nil {
					return err
				}
				return cudahist.WriteDataset(cmd.OutOrStdout(), ds)
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name>...",
		Short: "Remove runs from the archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.withArchive(func(a *cudahist.Archive) error {
				for _, n := range args {
					if err := a.Delete(n); err != nil {
						return err
					}
					t.Log.Info("Removed run", zap.String("name", n))
				}
				return nil
			})
		},
	}

	root.AddCommand(importCmd, listCmd, showCmd, exportCmd, rmCmd)
	return root
}

func (t *archiveTool) withArchive(fn func(*cudahist.Archive) error) error {
	a, err := cudahist.OpenArchive(t.dir)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func (t *archiveTool) importFiles(cmd *cobra.Command, a *cudahist.Archive, files []string, name string) error {
	sets, err := t.Load(cmd.Context(), files)
	if err != nil {
		cudahist.PrintLoadHelp(cmd.ErrOrStderr(), err)
		return err
	}
	for _, ds := range sets {
		if name != "" {
			ds.Name = name
		}
		if ds.Empty() {
			t.Log.Warn("Skipping empty data file", zap.String("name", ds.Name))
			continue
		}
		if err := a.Put(ds, t.now()); err != nil {
			return fmt.Errorf("can't store %s: %w", ds.Name, err)
		}
		t.Log.Info("Archived run", zap.String("name", ds.Name), zap.Int("records", ds.Len()))
	}
	return nil
}
