package compose

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, "compose.yml", `
services:
  redis:
    image: redis:7
  mailpit:
    image: axllent/mailpit
    container_name: mailpit
`)
	f, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Services) != 2 {
		t.Errorf("services: got %d, want 2", len(f.Services))
	}
	if f.Services["mailpit"].ContainerName != "mailpit" {
		t.Errorf("container_name: got %q", f.Services["mailpit"].ContainerName)
	}
}

func TestParseFilesMerge(t *testing.T) {
	base := writeFile(t, "base.yml", `
services:
  web:
    image: app:v1
  db:
    image: mysql:8
`)
	override := writeFile(t, "override.yml", `
services:
  web:
    image: app:v2
  cache:
    image: redis:7
`)
	f, err := ParseFiles([]string{base, override})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Services) != 3 {
		t.Errorf("merged services: got %d, want 3", len(f.Services))
	}
	if f.Services["web"].Image != "app:v2" {
		t.Errorf("override not applied: got %q", f.Services["web"].Image)
	}
	if f.Services["db"].Image != "mysql:8" {
		t.Errorf("base service lost: got %q", f.Services["db"].Image)
	}
}

func TestContainerNames(t *testing.T) {
	f := &File{Services: map[string]Service{
		"web":     {Image: "app:v1"},
		"mailpit": {Image: "axllent/mailpit", ContainerName: "mailpit"},
	}}

	got := f.ContainerNames("proj1", []string{"web", "mailpit"})
	want := []string{"proj1-web-1", "mailpit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("container names: got %v, want %v", got, want)
	}

	// Without a project name the service name is used as-is.
	if name := f.ContainerName("", "web"); name != "web" {
		t.Errorf("no-project name: got %q", name)
	}
}
