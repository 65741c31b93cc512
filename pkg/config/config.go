// Package config loads and resolves the .sugar.yaml configuration file.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/modoterra/sugar/pkg/core"
)

// Config represents a .sugar.yaml file. Exactly one of Services (legacy
// single-group shape) or Groups must be present.
type Config struct {
	Backend  string           `yaml:"backend"`
	EnvFile  StringList       `yaml:"env-file"`
	Defaults map[string]any   `yaml:"defaults"`
	Services *Group           `yaml:"services"`
	Groups   map[string]*Group `yaml:"groups"`
	Hooks    map[string][]Hook `yaml:"hooks"`
}

// Group is a named collection of services sharing compose files and a
// project name.
type Group struct {
	ProjectName string     `yaml:"project-name"`
	ConfigPath  StringList `yaml:"config-path"`
	EnvFile     StringList `yaml:"env-file"`
	Services    ServiceSet `yaml:"services"`
}

// ServiceSet holds the default service selection and the available services
// of a group. Default is a comma-separated list of names.
type ServiceSet struct {
	Default   string    `yaml:"default"`
	Available []Service `yaml:"available"`
}

// Service is one entry of a group's available list.
type Service struct {
	Name string `yaml:"name"`
}

// Hook is a shell command run around backend invocations when its targets
// match the current plugin and action.
type Hook struct {
	Name    string              `yaml:"name"`
	Run     string              `yaml:"run"`
	Targets map[string][]string `yaml:"targets"`
}

// StringList accepts a YAML scalar string or a sequence of strings. Any
// other YAML type is a configuration error.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		if node.Tag != "!!str" {
			return typeError(node.Tag)
		}
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		out := make(StringList, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return typeError(item.Tag)
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return typeError(node.Tag)
	}
}

func typeError(tag string) error {
	return core.NewError(core.ErrInvalidConfig,
		"attribute supports the data types string or list of strings, %s received", tag)
}

// AvailableNames returns the names of the group's available services, in
// declaration order.
func (g *Group) AvailableNames() []string {
	names := make([]string, 0, len(g.Services.Available))
	for _, s := range g.Services.Available {
		names = append(names, s.Name)
	}
	return names
}

// DefaultString reads a string-valued key from the rendered defaults.
func (c *Config) DefaultString(key string) string {
	v, ok := c.Defaults[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
