package cudahist

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the console logger used by the command line tools.
// Output goes to stderr so that it does not mix with histogram output.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// LogDataset reports how a dataset was loaded.
func LogDataset(log *zap.Logger, ds *Dataset) {
	log.Debug("Loaded dataset",
		zap.String("name", ds.Name),
		zap.Int("records", ds.Len()),
		zap.Duration("elapsed", ds.LoadTime))
	if ds.Dropped > 0 {
		log.Warn("Skipped malformed rows", zap.String("name", ds.Name), zap.Int("rows", ds.Dropped))
	}
}
