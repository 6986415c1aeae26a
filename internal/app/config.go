package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Flag mode: one chart from these four options.
	DataPath   string
	ThemeName  string
	ShowLabels bool
	OutputPath string

	// Chart-file mode: path to an .hcl chart definition file or directory.
	// When set, the four flag-mode options above are ignored.
	ChartPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ChartPath == "" {
		if cfg.DataPath == "" {
			return nil, errors.New("DataPath is a required configuration field and cannot be empty")
		}
		if cfg.OutputPath == "" {
			return nil, errors.New("OutputPath is a required configuration field and cannot be empty")
		}
	}
	return &cfg, nil
}
