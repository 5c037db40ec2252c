package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/specialistvlad/baton/internal/conn"
	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/inventory"
	"github.com/specialistvlad/baton/internal/metrics"
	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/registry"
)

// dialFunc opens the connection for one system.
type dialFunc func(ctx context.Context, sys *model.System) (model.Connection, error)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	loader   *inventory.Loader
	project  *inventory.Project
	dial     dialFunc

	promRegistry *prometheus.Registry
	metrics      *metrics.Collector
	httpServer   *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry and
// metrics registry. With no modules the core modules are registered.
//
// A registry that fails validation is a programmer error and panics.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	reg := registry.New().Use(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		outW:         outW,
		logger:       logger,
		config:       cfg,
		registry:     reg,
		loader:       inventory.NewLoader(),
		dial:         conn.Dial,
		promRegistry: promRegistry,
		metrics:      metrics.NewWithRegistry(promRegistry),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Project returns the loaded inventory, or nil before LoadInventory.
func (a *App) Project() *inventory.Project {
	return a.project
}
