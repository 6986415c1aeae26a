package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/skychart/internal/app"
	"github.com/vk/skychart/internal/theme"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
//
// The --theme flag is validated here against the registered theme names, so
// an unknown name on the command line is a usage error. Theme names inside
// chart definition files skip this check on purpose and fall back to the
// default theme at render time.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("skychart", flag.ContinueOnError)
	flagSet.SetOutput(output)

	themeNames := strings.Join(theme.Names(), ", ")

	flagSet.Usage = func() {
		fmt.Fprint(output, `
skychart - Render a star catalogue as a sky-chart image.

Usage:
  skychart [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	dataFlag := flagSet.String("data", "data/stars.csv", "Path to the star catalogue CSV file.")
	themeFlag := flagSet.String("theme", theme.DefaultName, "Color theme for the chart. Options: "+themeNames+".")
	showLabelsFlag := flagSet.Bool("show-labels", false, "Draw star names next to their positions.")
	outputFlag := flagSet.String("output", "night_sky.png", "File to save the generated image.")
	chartFlag := flagSet.String("chart", "", "Path to an .hcl chart definition file or directory. Overrides the single-chart options above.")
	logFormatFlag := flagSet.String("log-format", "auto", "Log output format. Options: 'auto', 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if !theme.Registered(*themeFlag) {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid theme %q: must be one of %s", *themeFlag, themeNames)}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "auto", "text", "json":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'auto', 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		DataPath:   *dataFlag,
		ThemeName:  *themeFlag,
		ShowLabels: *showLabelsFlag,
		OutputPath: *outputFlag,
		ChartPath:  *chartFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
