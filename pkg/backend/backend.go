// Package backend resolves the orchestration executable for a configuration
// and assembles its argument prefix.
package backend

import (
	"github.com/modoterra/sugar/pkg/config"
	"github.com/modoterra/sugar/pkg/core"
)

// Flavor identifies the orchestration tool family.
type Flavor string

const (
	FlavorDockerCompose Flavor = "docker-compose"
	FlavorDockerPlugin  Flavor = "docker-plugin"
	FlavorPodmanCompose Flavor = "podman-compose"
	FlavorSwarm         Flavor = "swarm"
)

// Backend is a resolved executable plus the base arguments that precede
// everything else on its command line.
type Backend struct {
	Flavor   Flavor
	Exe      string
	BaseArgs []string
}

// Resolve maps the config's backend identifier to an executable. Unknown
// identifiers are rejected.
func Resolve(name string) (*Backend, error) {
	switch name {
	case "docker-compose":
		return &Backend{Flavor: FlavorDockerCompose, Exe: "docker-compose"}, nil
	case "docker compose", "compose":
		return &Backend{Flavor: FlavorDockerPlugin, Exe: "docker", BaseArgs: []string{"compose"}}, nil
	case "podman-compose":
		return &Backend{Flavor: FlavorPodmanCompose, Exe: "podman-compose"}, nil
	default:
		return nil, core.NewError(core.ErrBackendNotSupported,
			"backend %q is not supported yet", name)
	}
}

// Swarm returns the plain docker backend used by the swarm plugin. Swarm
// commands take no compose prefix arguments.
func Swarm() *Backend {
	return &Backend{Flavor: FlavorSwarm, Exe: "docker"}
}

// Prefix assembles the fixed argument prefix for a group: env-file flags,
// compose-file flags, then the project-name flag. The prefix is prepended to
// every backend invocation of the run.
func (b *Backend) Prefix(group *config.Group) ([]string, error) {
	args := append([]string{}, b.BaseArgs...)

	for _, f := range group.EnvFile {
		args = append(args, "--env-file", f)
	}

	if len(group.ConfigPath) == 0 {
		return nil, core.NewError(core.ErrInvalidConfig,
			"the group's config-path attribute is required")
	}
	for _, f := range group.ConfigPath {
		args = append(args, "--file", f)
	}

	if group.ProjectName != "" {
		args = append(args, "--project-name", group.ProjectName)
	}
	return args, nil
}
