package config

import (
	"strings"

	"github.com/modoterra/sugar/pkg/core"
)

// SelectGroup chooses the active service group. With no requested name the
// configured default group is used; when no default is recorded and exactly
// one group exists, that group is inferred. The matched group is populated
// in place: the default project name is injected when the group has none,
// and an empty default service list is synthesized from the available
// services.
func SelectGroup(cfg *Config, requested string) (*Group, error) {
	name := requested
	if name == "" {
		name = cfg.DefaultString("group")
	}
	if name == "" {
		if len(cfg.Groups) == 1 {
			for only := range cfg.Groups {
				name = only
			}
		} else {
			return nil, core.NewError(core.ErrMissingParameter,
				"the service group parameter or default group configuration weren't defined")
		}
	}

	group, ok := cfg.Groups[name]
	if !ok {
		return nil, core.NewError(core.ErrMissingParameter,
			"the given group %q was not found in the configuration file", name)
	}

	if defaultProject := cfg.DefaultString("project-name"); defaultProject != "" && group.ProjectName == "" {
		group.ProjectName = defaultProject
	}
	if group.Services.Default == "" {
		group.Services.Default = strings.Join(group.AvailableNames(), ",")
	}
	return group, nil
}

// ResolveServices computes the service names an action operates on.
// servicesSet reports whether --services was given at all, so an explicitly
// empty value can be told apart from an absent one.
func ResolveServices(group *Group, all bool, servicesArg string, servicesSet bool) ([]string, error) {
	if all {
		return group.AvailableNames(), nil
	}
	if servicesSet && servicesArg == "" {
		return nil, core.NewError(core.ErrInvalidParameter,
			"if you want to execute the operation for all services, use the --all parameter")
	}
	if servicesSet {
		return strings.Split(servicesArg, ","), nil
	}
	if group.Services.Default == "" {
		return nil, nil
	}
	return strings.Split(group.Services.Default, ","), nil
}
