package cudahist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Tool holds the state shared by the command line tools: flags common to all
// of them, the logger and the loaded configuration.
type Tool struct {
	Verbose    bool
	ConfigPath string

	Log    *zap.Logger
	Config *Config
	Stdout io.Writer // receives user-facing notices, may be nil
}

// BindFlags registers the common flags.
func (t *Tool) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&t.Verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&t.ConfigPath, "config", "", "YAML settings file")
}

// Init builds the logger and loads the configuration.
func (t *Tool) Init() error {
	var err error
	if t.Log, err = NewLogger(t.Verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if t.Config, err = LoadConfig(t.ConfigPath); err != nil {
		return err
	}
	if t.ConfigPath != "" {
		t.Log.Debug("Using settings", zap.String("config", t.ConfigPath))
	}
	return nil
}

// Close flushes the logger.
func (t *Tool) Close() {
	if t.Log != nil {
		_ = t.Log.Sync()
	}
}

// Load reads the datasets named by args. Without arguments the default data
// file is searched for.
func (t *Tool) Load(ctx context.Context, args []string) ([]*Dataset, error) {
	files, err := InputFiles(args)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		t.Log.Debug("Found data file", zap.String("path", files[0]))
		if t.Stdout != nil {
			fmt.Fprintf(t.Stdout, "Found data file at: %s\n\n", files[0])
		}
	}
	sets, err := ReadDatasets(ctx, files)
	if err != nil {
		return nil, err
	}
	for _, ds := range sets {
		LogDataset(t.Log, ds)
	}
	return sets, nil
}

// PrintLoadHelp explains a failed Load to the user.
func PrintLoadHelp(w io.Writer, err error) {
	var serr *SearchError
	switch {
	case errors.As(err, &serr):
		fmt.Fprintln(w, "Searched in:")
		for _, p := range serr.Searched {
			fmt.Fprintf(w, "  - %s\n", p)
		}
		fmt.Fprintln(w, "\nPlease run the CUDA miner first to generate histogram data:")
		fmt.Fprintln(w, "  cd includes && make run-cuda")
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "Please run the CUDA miner first to generate histogram data.")
	}
}
