// Package app wires configuration, service resolution, and backend
// invocation into the sugar command pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modoterra/sugar/pkg/backend"
	"github.com/modoterra/sugar/pkg/config"
	"github.com/modoterra/sugar/pkg/console"
	"github.com/modoterra/sugar/pkg/env"
)

// Options selects the configuration file and service group for a run.
// Verbose and dry-run live on the runner, which is what acts on them.
type Options struct {
	ConfigFile string
	Group      string
}

// Request is one resolved subcommand invocation.
type Request struct {
	Action      string
	All         bool
	Services    string
	ServicesSet bool
	Service     string
	Options     []string
	Cmd         []string
}

// App holds the loaded configuration and the resolved backend for one run.
type App struct {
	opts   Options
	logger *slog.Logger
	runner backend.Runner

	Config  *config.Config
	Env     map[string]string
	Group   *config.Group
	Backend *backend.Backend
	prefix  []string
}

func New(opts Options, runner backend.Runner, logger *slog.Logger) *App {
	return &App{opts: opts, runner: runner, logger: logger}
}

// Load reads the configuration file and resolves the group and backend.
// It must be called before any Run method.
func (a *App) Load() error {
	cfg, err := config.Load(a.opts.ConfigFile)
	if err != nil {
		return err
	}

	environ, err := env.Load(a.opts.ConfigFile, cfg.EnvFile)
	if err != nil {
		return err
	}
	if err := config.RenderDefaults(cfg, environ); err != nil {
		return err
	}
	config.NormalizeRootServices(cfg)

	group, err := config.SelectGroup(cfg, a.opts.Group)
	if err != nil {
		return err
	}

	be, err := backend.Resolve(cfg.Backend)
	if err != nil {
		return err
	}
	prefix, err := be.Prefix(group)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Env = environ
	a.Group = group
	a.Backend = be
	a.prefix = prefix

	a.logger.Debug("configuration loaded",
		"backend", cfg.Backend,
		"project", group.ProjectName,
		"services", len(group.Services.Available))
	return nil
}

// call runs one backend invocation wrapped in the matching hooks.
func (a *App) call(ctx context.Context, plugin, action, exe string, argv []string) error {
	if err := a.runHooks(ctx, "pre-run", plugin, action); err != nil {
		return err
	}
	if err := a.runner.Run(ctx, exe, argv); err != nil {
		return err
	}
	return a.runHooks(ctx, "post-run", plugin, action)
}

func (a *App) runHooks(ctx context.Context, stage, plugin, action string) error {
	for _, hook := range a.Config.Hooks[stage] {
		actions := hook.Targets[plugin]
		if !contains(actions, action) {
			continue
		}
		console.Info(fmt.Sprintf("Running %s hook: %s ...", stage, hook.Name))
		if err := a.runner.Run(ctx, "sh", []string{"-c", hook.Run}); err != nil {
			return err
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
