package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amonks/mdtodo/internal/config"
	"github.com/amonks/mdtodo/internal/testsupport"
)

func writeGlobalConfig(t *testing.T, homeDir, content string) {
	t.Helper()
	path := filepath.Join(homeDir, ".config", "mdtodo", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.ProjectFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.TodosPath != "" || cfg.User != "" || cfg.DefaultProject != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
todos-path = "/srv/todos"
user = " ajm "
timezone = "America/Chicago"
default-project = "work"

[log]
level = "debug"
format = "json"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.TodosPath != "/srv/todos" {
		t.Errorf("TodosPath = %q, expected %q", cfg.TodosPath, "/srv/todos")
	}
	if cfg.User != "ajm" {
		t.Errorf("User = %q, expected %q", cfg.User, "ajm")
	}
	if cfg.DefaultProject != "work" {
		t.Errorf("DefaultProject = %q, expected %q", cfg.DefaultProject, "work")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, "user = [unterminated")

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, "todo-path = \"/typo\"\n")

	_, err := config.Load(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "todo-path") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoad_UsesGlobalWhenProjectMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeGlobalConfig(t, homeDir, `
user = "global-user"

[log]
level = "warn"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.User != "global-user" {
		t.Errorf("User = %q, expected %q", cfg.User, "global-user")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, expected %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeGlobalConfig(t, homeDir, `
user = "global-user"
default-project = "home"

[log]
level = "warn"
format = "logfmt"
`)
	writeProjectConfig(t, tmpDir, `
default-project = "work"

[log]
level = "debug"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.User != "global-user" {
		t.Errorf("User = %q, expected %q", cfg.User, "global-user")
	}
	if cfg.DefaultProject != "work" {
		t.Errorf("DefaultProject = %q, expected %q", cfg.DefaultProject, "work")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "logfmt" {
		t.Errorf("Log.Format = %q, expected %q", cfg.Log.Format, "logfmt")
	}
}

func TestLoad_ProjectEmptyOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeGlobalConfig(t, homeDir, `timezone = "Europe/Paris"`)
	writeProjectConfig(t, tmpDir, `timezone = ""`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Timezone != "" {
		t.Errorf("Timezone = %q, expected empty", cfg.Timezone)
	}
}

func TestLocation(t *testing.T) {
	cfg := &config.Config{}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != time.Local {
		t.Errorf("expected time.Local, got %v", loc)
	}

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("expected UTC, got %v", loc)
	}

	cfg.Timezone = "Not/AZone"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for unknown zone")
	}
}
