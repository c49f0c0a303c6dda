package cudahist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the histogram tools.
type Config struct {
	Text   TextConfig `yaml:"text"`
	Plot   PlotConfig `yaml:"plot"`
	Report string     `yaml:"report"` // flat text report written by the text tool
}

type TextConfig struct {
	BarWidth int `yaml:"bar_width"`
	MinBins  int `yaml:"min_bins"`
	MaxBins  int `yaml:"max_bins"`
}

type PlotConfig struct {
	Bins     int    `yaml:"bins"`
	Width    string `yaml:"width"`
	Height   string `yaml:"height"`
	DPI      int    `yaml:"dpi"`
	TimeOut  string `yaml:"time_out"`
	CoinsOut string `yaml:"coins_out"`
	HTMLOut  string `yaml:"html_out"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			BarWidth: 50,
			MinBins:  5,
			MaxBins:  20,
		},
		Plot: PlotConfig{
			Bins:     50,
			Width:    "12in",
			Height:   "6in",
			DPI:      300,
			TimeOut:  "cuda_kernel_time_histogram.png",
			CoinsOut: "cuda_coins_found_histogram.png",
			HTMLOut:  "cuda_histograms.html",
		},
		Report: DefaultReportFile,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Text.BarWidth <= 0 {
		return fmt.Errorf("text.bar_width must be positive, got %d", c.Text.BarWidth)
	}
	if c.Text.MinBins <= 0 || c.Text.MaxBins < c.Text.MinBins {
		return fmt.Errorf("invalid text bin limits %d..%d", c.Text.MinBins, c.Text.MaxBins)
	}
	if c.Plot.Bins <= 0 {
		return fmt.Errorf("plot.bins must be positive, got %d", c.Plot.Bins)
	}
	if c.Plot.DPI <= 0 {
		return fmt.Errorf("plot.dpi must be positive, got %d", c.Plot.DPI)
	}
	if _, err := ParseLength(c.Plot.Width); err != nil {
		return fmt.Errorf("plot.width: %w", err)
	}
	if _, err := ParseLength(c.Plot.Height); err != nil {
		return fmt.Errorf("plot.height: %w", err)
	}
	return nil
}
