package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/assetcheck/internal/config"
	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	profile  *config.Model
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load overrides into the format-agnostic profile model first. No profile
	// path means every check keeps its registry defaults.
	profile := config.NewModel()
	if appConfig.ProfilePath != "" {
		loaded, err := loader.Load(ctx, appConfig.ProfilePath)
		if err != nil {
			// A failure to load the profile is a fatal startup error.
			panic(fmt.Errorf("failed to load profile: %w", err))
		}
		profile = loaded
	}
	logger.Debug("Profile loaded and translated into unified model.")

	// Create and populate the registry with check modules.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All check modules registered.", "count", len(modules))

	// Validate the integrity of the registry.
	if err := reg.Validate(); err != nil {
		// This is a programmer error (a module registered a check with a bad
		// ordering reference), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		profile:  profile,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Profile returns the loaded override model. This is primarily for testing.
func (a *App) Profile() *config.Model {
	return a.profile
}
