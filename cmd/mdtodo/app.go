package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amonks/mdtodo/internal/config"
	"github.com/amonks/mdtodo/internal/logging"
	"github.com/amonks/mdtodo/internal/paths"
	"github.com/amonks/mdtodo/internal/todoenv"
	"github.com/amonks/mdtodo/todo"
)

// app is everything a command needs: the chosen list, the store that holds
// it and the clock.
type app struct {
	cfg    *config.Config
	store  *todo.Store
	key    todo.Key
	now    time.Time
	logger *log.Logger
	stderr io.Writer
}

func newApp(cmd *cobra.Command) (*app, error) {
	workDir, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if rootOpts.logLevel != "" {
		level = rootOpts.logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	now, err := todoenv.Now(loc)
	if err != nil {
		return nil, err
	}

	key, err := resolveKey(rootOpts, cfg, now)
	if err != nil {
		return nil, err
	}
	dir, err := resolveTodosDir(rootOpts, cfg)
	if err != nil {
		return nil, err
	}

	store, err := todo.Open(dir, todo.OpenOptions{
		Logger:         logger,
		PromptToCreate: true,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "root", store.Root(), "key", key.String(), "now", now.Format(time.RFC3339))

	return &app{cfg: cfg, store: store, key: key, now: now, logger: logger, stderr: cmd.ErrOrStderr()}, nil
}

// records loads the list, offering to create it when it is missing.
func (a *app) records() ([]todo.Record, error) {
	records, err := a.store.Records(a.key)
	if !errors.Is(err, todo.ErrProjectNotFound) {
		return records, err
	}

	created, promptErr := a.store.OfferCreate(a.key)
	if promptErr != nil {
		return nil, promptErr
	}
	if !created {
		return nil, fmt.Errorf("%w (run `mdtodo create` to start it)", err)
	}
	fmt.Fprintf(a.stderr, "Created list %s\n", a.key)
	return nil, nil
}

// visible returns the rows a client sees, numbered from 1 in list output.
func (a *app) visible() ([]todo.Record, error) {
	records, err := a.records()
	if err != nil {
		return nil, err
	}
	return todo.Visible(records, a.now), nil
}

// save submits the edited view back through the reconciler.
func (a *app) save(edits []todo.ProposedEdit) ([]todo.Record, error) {
	return a.store.Save(a.key, edits, a.now)
}
