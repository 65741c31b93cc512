package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modoterra/sugar/pkg/core"
)

func TestParseGroupsConfig(t *testing.T) {
	yaml := `
backend: docker-compose
env-file: .env
defaults:
  project-name: myproj
groups:
  group1:
    project-name: proj1
    config-path: docker-compose.yml
    services:
      default: svc1,svc2
      available:
        - name: svc1
        - name: svc2
        - name: svc3
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Backend != "docker-compose" {
		t.Errorf("backend: got %q", cfg.Backend)
	}
	if len(cfg.EnvFile) != 1 || cfg.EnvFile[0] != ".env" {
		t.Errorf("env-file: got %v", cfg.EnvFile)
	}
	g := cfg.Groups["group1"]
	if g == nil {
		t.Fatal("group1 missing")
	}
	if g.ProjectName != "proj1" {
		t.Errorf("project-name: got %q", g.ProjectName)
	}
	if len(g.ConfigPath) != 1 || g.ConfigPath[0] != "docker-compose.yml" {
		t.Errorf("config-path: got %v", g.ConfigPath)
	}
	if got := g.AvailableNames(); len(got) != 3 || got[0] != "svc1" || got[2] != "svc3" {
		t.Errorf("available names: got %v", got)
	}
}

func TestParseConfigPathList(t *testing.T) {
	yaml := `
backend: compose
groups:
  main:
    config-path:
      - base.yml
      - override.yml
    services:
      available:
        - name: web
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cp := cfg.Groups["main"].ConfigPath
	if len(cp) != 2 || cp[0] != "base.yml" || cp[1] != "override.yml" {
		t.Errorf("config-path list: got %v", cp)
	}
}

func TestParseConfigPathWrongType(t *testing.T) {
	yaml := `
backend: docker-compose
groups:
  main:
    config-path: 123
    services:
      available:
        - name: web
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected error for integer config-path")
	}
	var se *core.Error
	if !errors.As(err, &se) || se.Kind != core.ErrInvalidConfig {
		t.Errorf("expected invalid-configuration, got %v", err)
	}
}

func TestParseServicesAndGroupsExclusive(t *testing.T) {
	both := `
backend: docker-compose
services:
  config-path: a.yml
  services:
    available: [{name: web}]
groups:
  g1:
    config-path: b.yml
    services:
      available: [{name: db}]
`
	if _, err := Parse([]byte(both)); err == nil {
		t.Error("expected error when both services and groups are present")
	}

	neither := "backend: docker-compose\n"
	if _, err := Parse([]byte(neither)); err == nil {
		t.Error("expected error when neither services nor groups is present")
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("backend: [unclosed"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	var se *core.Error
	if !errors.As(err, &se) || se.Kind != core.ErrInvalidConfig {
		t.Errorf("expected invalid-configuration, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".sugar.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	var se *core.Error
	if !errors.As(err, &se) || se.Kind != core.ErrConfigFileNotFound {
		t.Errorf("expected config-file-not-found, got %v", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sugar.yaml")
	content := `
backend: docker-compose
groups:
  main:
    config-path: compose.yml
    services:
      available:
        - name: web
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Groups["main"] == nil {
		t.Error("main group missing")
	}
}

func TestNormalizeRootServices(t *testing.T) {
	yaml := `
backend: docker-compose
services:
  project-name: legacy
  config-path: compose.yml
  services:
    default: web
    available:
      - name: web
      - name: db
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	NormalizeRootServices(cfg)

	if cfg.Services != nil {
		t.Error("services should be cleared after normalization")
	}
	main := cfg.Groups["main"]
	if main == nil {
		t.Fatal("main group not synthesized")
	}
	if main.ProjectName != "legacy" {
		t.Errorf("project-name: got %q", main.ProjectName)
	}
	if cfg.DefaultString("group") != "main" {
		t.Errorf("default group: got %q", cfg.DefaultString("group"))
	}

	// Idempotent: a second pass must change nothing.
	NormalizeRootServices(cfg)
	if len(cfg.Groups) != 1 || cfg.Groups["main"] != main {
		t.Error("second normalization changed the config")
	}
}

func TestRenderDefaults(t *testing.T) {
	yaml := `
backend: docker-compose
defaults:
  project-name: ${{ env.FOO }}
  replicas: "3"
  flag: true
groups:
  main:
    config-path: compose.yml
    services:
      available: [{name: web}]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := RenderDefaults(cfg, map[string]string{"FOO": "bar"}); err != nil {
		t.Fatalf("render defaults: %v", err)
	}
	if cfg.Defaults["project-name"] != "bar" {
		t.Errorf("project-name: got %v", cfg.Defaults["project-name"])
	}
	// The rendered string is re-parsed as a YAML scalar.
	if cfg.Defaults["replicas"] != 3 {
		t.Errorf("replicas: got %v (%T)", cfg.Defaults["replicas"], cfg.Defaults["replicas"])
	}
	if cfg.Defaults["flag"] != true {
		t.Errorf("flag: got %v", cfg.Defaults["flag"])
	}
}
