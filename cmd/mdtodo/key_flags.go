package main

import (
	"fmt"
	"os/user"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/amonks/mdtodo/internal/config"
	"github.com/amonks/mdtodo/internal/paths"
	"github.com/amonks/mdtodo/internal/todoenv"
	"github.com/amonks/mdtodo/todo"
)

// keyOptions holds the flags that pick a list file.
type keyOptions struct {
	dir      string
	user     string
	year     int
	project  string
	logLevel string
}

func addKeyFlags(flags *pflag.FlagSet, opts *keyOptions) {
	flags.StringVar(&opts.dir, "dir", "", "Root directory of list files (default ~/.local/share/mdtodo)")
	flags.StringVar(&opts.user, "user", "", "List owner (default $MDTODO_USER, then config, then login name)")
	flags.IntVar(&opts.year, "year", 0, "List year (default current year)")
	flags.StringVarP(&opts.project, "project", "p", "", fmt.Sprintf("Project name (default %q)", todo.DefaultProject))
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

var lookupLoginName = func() (string, error) {
	current, err := user.Current()
	if err != nil {
		return "", err
	}
	return current.Username, nil
}

// resolveKey picks the list for this invocation. Flags win over the
// environment, which wins over config.
func resolveKey(opts keyOptions, cfg *config.Config, now time.Time) (todo.Key, error) {
	key := todo.Key{
		User:    strings.TrimSpace(opts.user),
		Year:    opts.year,
		Project: strings.TrimSpace(opts.project),
	}

	if key.User == "" {
		key.User = todoenv.User()
	}
	if key.User == "" && cfg != nil {
		key.User = cfg.User
	}
	if key.User == "" {
		name, err := lookupLoginName()
		if err != nil {
			return todo.Key{}, fmt.Errorf("no user: set --user, %s or user in config", todoenv.UserEnvVar)
		}
		key.User = name
	}

	if key.Year == 0 {
		key.Year = now.Year()
	}

	if key.Project == "" && cfg != nil {
		key.Project = cfg.DefaultProject
	}
	if key.Project == "" {
		key.Project = todo.DefaultProject
	}

	return key, todo.ValidateKey(key)
}

func resolveTodosDir(opts keyOptions, cfg *config.Config) (string, error) {
	override := opts.dir
	if override == "" && cfg != nil {
		override = cfg.TodosPath
	}
	return paths.ResolveWithDefault(override, paths.DefaultTodosDir)
}
