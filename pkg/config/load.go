package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/modoterra/sugar/pkg/core"
	"github.com/modoterra/sugar/pkg/template"
)

// Load reads and parses a .sugar.yaml file. Template tags in the raw text
// are escaped before the YAML pass so compose-native {{ }} syntax is not
// mistaken for sugar's own template expressions.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewError(core.ErrConfigFileNotFound,
				"config file %s not found", path)
		}
		return nil, core.NewError(core.ErrInvalidConfig,
			"cannot read config file %s: %v", path, err)
	}
	return Parse(raw)
}

// Parse parses raw .sugar.yaml content and validates the top-level shape.
func Parse(raw []byte) (*Config, error) {
	escaped := template.EscapeTags(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(escaped), &cfg); err != nil {
		if se, ok := err.(*core.Error); ok {
			return nil, se
		}
		return nil, core.NewError(core.ErrInvalidConfig, "cannot parse config: %v", err)
	}

	if cfg.Services == nil && len(cfg.Groups) == 0 {
		return nil, core.NewError(core.ErrInvalidConfig,
			"either `services` or `groups` must be given")
	}
	if cfg.Services != nil && len(cfg.Groups) > 0 {
		return nil, core.NewError(core.ErrInvalidConfig,
			"`services` and `groups` given, only one is allowed")
	}
	if cfg.Defaults == nil {
		cfg.Defaults = make(map[string]any)
	}
	return &cfg, nil
}

// RenderDefaults renders every string-valued default against the
// environment snapshot, then re-parses the result as a YAML scalar so a
// rendered "3" becomes an integer.
func RenderDefaults(cfg *Config, env map[string]string) error {
	for k, v := range cfg.Defaults {
		s, ok := v.(string)
		if !ok {
			continue
		}
		rendered, err := template.Render(template.UnescapeTags(s), env)
		if err != nil {
			return err
		}
		var parsed any
		if err := yaml.Unmarshal([]byte(rendered), &parsed); err != nil {
			return core.NewError(core.ErrInvalidConfig,
				"cannot parse rendered default %q: %v", k, err)
		}
		cfg.Defaults[k] = parsed
	}
	return nil
}

// NormalizeRootServices migrates the legacy single-group `services` shape
// into a `groups` map with one entry named main, and records main as the
// default group. Running it on an already-normalized config is a no-op.
func NormalizeRootServices(cfg *Config) {
	if cfg.Services == nil {
		return
	}
	cfg.Groups = map[string]*Group{"main": cfg.Services}
	cfg.Defaults["group"] = "main"
	cfg.Services = nil
}
