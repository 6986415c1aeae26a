package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/skychart/internal/catalog"
	"github.com/vk/skychart/internal/chart"
	"github.com/vk/skychart/internal/ctxlog"
	"github.com/vk/skychart/internal/render"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Run executes the render pipeline: resolve the chart set, then load and
// render each chart in order. The first failure aborts the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	specs, err := a.chartSpecs(ctx)
	if err != nil {
		return err
	}
	a.logger.Debug("Chart set resolved.", "charts", len(specs))

	for _, spec := range specs {
		stars, err := catalog.Load(ctx, spec.Data)
		if err != nil {
			return fmt.Errorf("chart %q: %w", spec.Name, err)
		}
		if err := render.Render(ctx, stars, spec.Theme, spec.ShowLabels, spec.Output); err != nil {
			return fmt.Errorf("chart %q: %w", spec.Name, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// chartSpecs resolves the configuration into the ordered set of charts to
// render: every chart block under ChartPath, or the single chart described
// by the flag-mode options.
func (a *App) chartSpecs(ctx context.Context) ([]chart.Spec, error) {
	if a.config.ChartPath != "" {
		specs, err := chart.Load(ctx, a.config.ChartPath)
		if err != nil {
			return nil, err
		}
		return specs, nil
	}

	return []chart.Spec{{
		Name:       "night-sky",
		Data:       a.config.DataPath,
		Theme:      a.config.ThemeName,
		ShowLabels: a.config.ShowLabels,
		Output:     a.config.OutputPath,
	}}, nil
}
