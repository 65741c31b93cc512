package app

import (
	"context"
	"sort"

	"github.com/modoterra/sugar/pkg/config"
	"github.com/modoterra/sugar/pkg/core"
)

// argMode controls how an action receives its service arguments.
type argMode int

const (
	// argServices resolves the group's service list from --services/--all.
	argServices argMode = iota
	// argService requires a single --service parameter.
	argService
	// argNone forwards no service names at all.
	argNone
)

type composeAction struct {
	mode  argMode
	extra []string
	// rejectSelection refuses --all and --services outright.
	rejectSelection bool
	help            string
}

// composeActions is the closed set of forwarded compose subcommands.
var composeActions = map[string]composeAction{
	"attach":  {mode: argService, help: "Attach local standard streams to a service's running container"},
	"build":   {mode: argServices, help: "Build or rebuild services"},
	"config":  {mode: argServices, help: "Parse, resolve and render compose file in canonical format"},
	"cp":      {mode: argNone, help: "Copy files/folders between a service container and the local filesystem"},
	"create":  {mode: argServices, help: "Create containers for a service"},
	"down":    {mode: argNone, extra: []string{"--remove-orphans"}, rejectSelection: true, help: "Stop and remove containers and networks"},
	"events":  {mode: argService, help: "Receive real time events from containers"},
	"exec":    {mode: argService, help: "Execute a command in a running container"},
	"images":  {mode: argServices, help: "List images used by the created containers"},
	"kill":    {mode: argServices, help: "Force stop service containers"},
	"logs":    {mode: argServices, help: "View output from containers"},
	"ls":      {mode: argNone, help: "List running compose projects"},
	"pause":   {mode: argServices, help: "Pause services"},
	"port":    {mode: argService, help: "Print the public port for a port binding"},
	"ps":      {mode: argServices, help: "List containers"},
	"pull":    {mode: argServices, help: "Pull service images"},
	"push":    {mode: argServices, help: "Push service images"},
	"restart": {mode: argServices, help: "Restart service containers"},
	"rm":      {mode: argServices, help: "Remove stopped service containers"},
	"run":     {mode: argService, help: "Run a one-off command on a service"},
	"scale":   {mode: argNone, help: "Scale services"},
	"start":   {mode: argServices, help: "Start services"},
	"stop":    {mode: argServices, help: "Stop services"},
	"top":     {mode: argServices, help: "Display the running processes"},
	"unpause": {mode: argServices, help: "Unpause services"},
	"up":      {mode: argServices, help: "Create and start containers"},
	"version": {mode: argNone, help: "Show the backend version information"},
	"wait":    {mode: argServices, help: "Block until the first service container stops"},
	"watch":   {mode: argServices, help: "Watch build context and rebuild containers on file updates"},
}

// ComposeActionNames returns the forwarded subcommand names in sorted order.
func ComposeActionNames() []string {
	names := make([]string, 0, len(composeActions))
	for name := range composeActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComposeActionHelp returns the one-line description for an action.
func ComposeActionHelp(name string) string {
	return composeActions[name].help
}

// RunCompose forwards one compose action to the backend.
func (a *App) RunCompose(ctx context.Context, req Request) error {
	return a.compose(ctx, "compose", req)
}

func (a *App) compose(ctx context.Context, plugin string, req Request) error {
	act, ok := composeActions[req.Action]
	if !ok {
		return core.NewError(core.ErrInvalidParameter,
			"the `%s` sub-command is not supported", req.Action)
	}

	if act.rejectSelection && (req.All || req.ServicesSet) {
		return core.NewError(core.ErrInvalidParameter,
			"The `%s` sub-command doesn't accept `--all` neither `--services` parameters.",
			req.Action)
	}

	services, err := a.actionServices(act, req)
	if err != nil {
		return err
	}

	argv := make([]string, 0, len(a.prefix)+1+len(act.extra)+len(req.Options)+len(services)+len(req.Cmd))
	argv = append(argv, a.prefix...)
	argv = append(argv, req.Action)
	argv = append(argv, act.extra...)
	argv = append(argv, req.Options...)
	argv = append(argv, services...)
	argv = append(argv, req.Cmd...)

	return a.call(ctx, plugin, req.Action, a.Backend.Exe, argv)
}

func (a *App) actionServices(act composeAction, req Request) ([]string, error) {
	switch act.mode {
	case argService:
		if req.Service == "" {
			return nil, core.NewError(core.ErrMissingParameter,
				"`%s` sub-command expected --service parameter.", req.Action)
		}
		return []string{req.Service}, nil
	case argNone:
		return nil, nil
	default:
		return config.ResolveServices(a.Group, req.All, req.Services, req.ServicesSet)
	}
}
