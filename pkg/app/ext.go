package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/modoterra/sugar/pkg/compose"
	"github.com/modoterra/sugar/pkg/config"
	"github.com/modoterra/sugar/pkg/core"
	"github.com/modoterra/sugar/pkg/inspect"
)

var (
	healthyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	unhealthyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RunExt handles the extended compose actions.
func (a *App) RunExt(ctx context.Context, req Request) error {
	switch req.Action {
	case "start":
		req.Action = "up"
		return a.compose(ctx, "ext", req)
	case "restart":
		stop := req
		stop.Action = "stop"
		stop.Options = nil
		if err := a.compose(ctx, "ext", stop); err != nil {
			return err
		}
		up := req
		up.Action = "up"
		return a.compose(ctx, "ext", up)
	case "stop":
		req.Action = "stop"
		return a.compose(ctx, "ext", req)
	case "get-ip", "wait":
		return core.NewError(core.ErrNotImplemented,
			"the `%s` sub-command is not implemented yet", req.Action)
	default:
		return core.NewError(core.ErrInvalidParameter,
			"the `%s` sub-command is not supported", req.Action)
	}
}

// Health prints a status summary of the group's running containers.
func (a *App) Health(ctx context.Context, w io.Writer, req Request) error {
	services, err := config.ResolveServices(a.Group, req.All, req.Services, req.ServicesSet)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		services = a.Group.AvailableNames()
	}

	file, err := compose.ParseFiles(a.Group.ConfigPath)
	if err != nil {
		return err
	}
	names := file.ContainerNames(a.Group.ProjectName, services)

	report, err := inspect.Health(ctx, a.runner, names)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-30s %-12s %12s %8s\n", "CONTAINER", "HEALTH", "MEM (MB)", "CPU %")
	for _, c := range report {
		health := unhealthyStyle.Render(c.Health)
		if c.Health == "healthy" {
			health = healthyStyle.Render(c.Health)
		}
		fmt.Fprintf(w, "%-30s %-12s %12.1f %8.2f\n", c.Name, health, c.MemUsageMB, c.CPUPercent)
	}
	return nil
}
