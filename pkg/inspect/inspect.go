// Package inspect gathers container information through the docker CLI.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/moby/moby/api/types/container"

	"github.com/modoterra/sugar/pkg/backend"
)

// ContainerHealth summarizes one running container.
type ContainerHealth struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Health     string  `json:"health"`
	MemUsageMB float64 `json:"memory_usage_mb"`
	CPUPercent float64 `json:"cpu_usage_percent"`
}

// Inspect decodes `docker inspect` output for the given container IDs.
func Inspect(ctx context.Context, runner backend.Runner, ids ...string) ([]container.InspectResponse, error) {
	out, err := runner.Capture(ctx, "docker", append([]string{"inspect"}, ids...))
	if err != nil {
		return nil, err
	}
	var resp []container.InspectResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		return nil, fmt.Errorf("decode inspect output: %w", err)
	}
	return resp, nil
}

// ContainerName returns the name of the container with the given ID, without
// the leading slash docker reports.
func ContainerName(ctx context.Context, runner backend.Runner, id string) (string, error) {
	resp, err := Inspect(ctx, runner, id)
	if err != nil {
		return "", err
	}
	if len(resp) == 0 {
		return "", fmt.Errorf("no container found for ID %s", id)
	}
	return strings.TrimPrefix(resp[0].Name, "/"), nil
}

// ContainerStats returns the current memory usage in MB and CPU usage as a
// percentage for the named container.
func ContainerStats(ctx context.Context, runner backend.Runner, name string) (float64, float64, error) {
	out, err := runner.Capture(ctx, "docker", []string{
		"stats", name, "--no-stream", "--format", "{{.MemUsage}} {{.CPUPerc}}",
	})
	if err != nil {
		return 0, 0, err
	}
	return parseStats(out)
}

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// parseStats reads "123.4MiB / 7.66GiB 0.52%" into (123.4, 0.52).
func parseStats(out string) (float64, float64, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return 0, 0, nil
	}
	memField := strings.TrimSpace(strings.SplitN(fields[0], "/", 2)[0])
	mem, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(memField, ""), 64)
	if err != nil {
		mem = 0
	}
	cpuField := strings.TrimSuffix(fields[len(fields)-1], "%")
	cpu, err := strconv.ParseFloat(cpuField, 64)
	if err != nil {
		return mem, 0, fmt.Errorf("parse cpu usage %q: %w", cpuField, err)
	}
	return mem, cpu, nil
}

// Health reports the status of running containers. When only is non-empty,
// the result is limited to those container names.
func Health(ctx context.Context, runner backend.Runner, only []string) ([]ContainerHealth, error) {
	out, err := runner.Capture(ctx, "docker", []string{
		"ps", "--format", "{{.ID}} {{.Names}} {{.Status}}",
	})
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	type row struct {
		id, name, status string
	}
	var rows []row
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
		if len(parts) < 3 {
			continue
		}
		if len(only) > 0 && !wanted[parts[1]] {
			continue
		}
		rows = append(rows, row{id: parts[0], name: parts[1], status: parts[2]})
	}

	ids := make([]string, 0, len(rows))
	for _, c := range rows {
		ids = append(ids, c.id)
	}
	healthByID := inspectHealth(ctx, runner, ids)

	var result []ContainerHealth
	for _, c := range rows {
		health := healthByID[c.id]
		if health == "" {
			// no healthcheck reported, fall back to the status column
			health = string(container.Unhealthy)
			if strings.Contains(strings.ToLower(c.status), "(healthy)") {
				health = string(container.Healthy)
			}
		}

		mem, cpu, err := ContainerStats(ctx, runner, c.name)
		if err != nil {
			mem, cpu = 0, 0
		}

		result = append(result, ContainerHealth{
			ID:         c.id,
			Name:       c.name,
			Status:     c.status,
			Health:     health,
			MemUsageMB: mem,
			CPUPercent: cpu,
		})
	}
	return result, nil
}

// inspectHealth maps docker ps IDs to the health status reported by the
// container state. The ps IDs are the truncated form of the full IDs that
// inspect returns. Containers without a healthcheck are absent from the map.
func inspectHealth(ctx context.Context, runner backend.Runner, ids []string) map[string]string {
	health := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return health
	}
	resp, err := Inspect(ctx, runner, ids...)
	if err != nil {
		return health
	}
	for _, r := range resp {
		if r.State == nil || r.State.Health == nil {
			continue
		}
		for _, id := range ids {
			if strings.HasPrefix(r.ID, id) {
				health[id] = string(r.State.Health.Status)
				break
			}
		}
	}
	return health
}
