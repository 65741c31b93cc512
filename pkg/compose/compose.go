// Package compose reads the compose files referenced by a service group.
package compose

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File represents the subset of a compose file sugar cares about.
type File struct {
	Services map[string]Service `yaml:"services"`
}

// Service is a minimal compose service definition.
type Service struct {
	Image         string `yaml:"image"`
	ContainerName string `yaml:"container_name"`
}

// ParseFile reads a single compose file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compose file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse compose file %s: %w", path, err)
	}
	return &f, nil
}

// ParseFiles merges the service definitions of several compose files, in
// order. Later files override earlier ones, matching compose's own merge
// semantics for the fields read here.
func ParseFiles(paths []string) (*File, error) {
	merged := &File{Services: make(map[string]Service)}
	for _, path := range paths {
		f, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		for name, svc := range f.Services {
			base := merged.Services[name]
			if svc.Image != "" {
				base.Image = svc.Image
			}
			if svc.ContainerName != "" {
				base.ContainerName = svc.ContainerName
			}
			merged.Services[name] = base
		}
	}
	return merged, nil
}

// ServiceNames returns the declared service names.
func (f *File) ServiceNames() []string {
	names := make([]string, 0, len(f.Services))
	for name := range f.Services {
		names = append(names, name)
	}
	return names
}

// ContainerName returns the container name compose gives the first replica
// of a service: the explicit container_name when set, otherwise
// project-service-1.
func (f *File) ContainerName(project, service string) string {
	if svc, ok := f.Services[service]; ok && svc.ContainerName != "" {
		return svc.ContainerName
	}
	if project == "" {
		return service
	}
	return fmt.Sprintf("%s-%s-1", project, service)
}

// ContainerNames maps the given services to their expected container names.
func (f *File) ContainerNames(project string, services []string) []string {
	names := make([]string, 0, len(services))
	for _, svc := range services {
		names = append(names, f.ContainerName(project, svc))
	}
	return names
}
