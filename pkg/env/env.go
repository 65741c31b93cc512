// Package env builds the environment snapshot used for template rendering
// and .env file overlays.
package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/modoterra/sugar/pkg/core"
)

// Snapshot returns the current process environment as a map.
func Snapshot() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	return vars
}

// Load returns the process environment overlaid with the key/value pairs of
// the given .env files. Relative paths are resolved against the directory of
// configPath. A missing file is a configuration error. The real process
// environment is never modified.
func Load(configPath string, envFiles []string) (map[string]string, error) {
	vars := Snapshot()

	for _, file := range envFiles {
		if file == "" {
			continue
		}
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(configPath), path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, core.NewError(core.ErrInvalidConfig,
				"env file was not found: %s", path)
		}
		overlay, err := godotenv.Read(path)
		if err != nil {
			return nil, core.NewError(core.ErrInvalidConfig,
				"cannot parse env file %s: %v", path, err)
		}
		for k, v := range overlay {
			vars[k] = v
		}
	}
	return vars, nil
}
