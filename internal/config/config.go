// Package config handles loading mdtodo.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/amonks/mdtodo/internal/paths"
)

// ProjectFileName is the name of the per-directory config file.
const ProjectFileName = "mdtodo.toml"

// Config represents the mdtodo.toml configuration file.
type Config struct {
	// TodosPath is the root directory holding list files.
	TodosPath string `toml:"todos-path"`

	// User names the list owner when no flag or environment override is set.
	User string `toml:"user"`

	// Timezone is an IANA zone name used for "now" and for visibility rules.
	Timezone string `toml:"timezone"`

	// DefaultProject is the project used when --project is not given.
	DefaultProject string `toml:"default-project"`

	Log Log `toml:"log"`
}

// Log contains logging configuration.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is one of text, json, logfmt.
	Format string `toml:"format"`
}

// Location returns the configured time zone, or time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c == nil || c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load loads configuration from dir and the global config file.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.TodosPath = mergeString(projectMeta.IsDefined("todos-path"), projectCfg.TodosPath, globalCfg.TodosPath)
	merged.User = mergeString(projectMeta.IsDefined("user"), projectCfg.User, globalCfg.User)
	merged.Timezone = mergeString(projectMeta.IsDefined("timezone"), projectCfg.Timezone, globalCfg.Timezone)
	merged.DefaultProject = mergeString(projectMeta.IsDefined("default-project"), projectCfg.DefaultProject, globalCfg.DefaultProject)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.Format = mergeString(projectMeta.IsDefined("log", "format"), projectCfg.Log.Format, globalCfg.Log.Format)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
