package app

import (
	"context"

	"github.com/modoterra/sugar/pkg/backend"
	"github.com/modoterra/sugar/pkg/core"
)

// RunSwarm handles the docker swarm actions. Swarm talks to plain docker
// and never carries the compose prefix arguments.
func (a *App) RunSwarm(ctx context.Context, req Request) error {
	be := backend.Swarm()

	var argv []string
	switch req.Action {
	case "init":
		argv = append([]string{"swarm", "init"}, req.Options...)
	case "join":
		argv = append([]string{"swarm", "join"}, req.Options...)
	case "leave":
		argv = append([]string{"swarm", "leave"}, req.Options...)
	case "ls":
		argv = append([]string{"stack", "ls"}, req.Options...)
	case "deploy":
		stack, err := a.stackName()
		if err != nil {
			return err
		}
		argv = []string{"stack", "deploy"}
		for _, path := range a.Group.ConfigPath {
			argv = append(argv, "--compose-file", path)
		}
		argv = append(argv, req.Options...)
		argv = append(argv, stack)
	case "ps":
		stack, err := a.stackName()
		if err != nil {
			return err
		}
		argv = append([]string{"stack", "ps"}, req.Options...)
		argv = append(argv, stack)
	case "rm":
		stack, err := a.stackName()
		if err != nil {
			return err
		}
		argv = append([]string{"stack", "rm"}, req.Options...)
		argv = append(argv, stack)
	case "rollback":
		if req.Service == "" {
			return core.NewError(core.ErrMissingParameter,
				"`rollback` sub-command expected --service parameter.")
		}
		argv = append([]string{"service", "update", "--rollback"}, req.Options...)
		argv = append(argv, req.Service)
	default:
		return core.NewError(core.ErrInvalidParameter,
			"the `%s` sub-command is not supported", req.Action)
	}

	return a.call(ctx, "swarm", req.Action, be.Exe, argv)
}

// stackName is the group's project name, required by the stack commands.
func (a *App) stackName() (string, error) {
	if a.Group.ProjectName == "" {
		return "", core.NewError(core.ErrMissingParameter,
			"a project-name is required for swarm stack commands")
	}
	return a.Group.ProjectName, nil
}
