package main

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/mdtodo/internal/config"
	"github.com/amonks/mdtodo/internal/ui"
	"github.com/amonks/mdtodo/todo"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		count   int
		want    int
		wantErr string
	}{
		{name: "first", arg: "1", count: 3, want: 0},
		{name: "last", arg: "3", count: 3, want: 2},
		{name: "zero", arg: "0", count: 3, wantErr: "expected 1-3"},
		{name: "past end", arg: "4", count: 3, wantErr: "expected 1-3"},
		{name: "not a number", arg: "two", count: 3, wantErr: "not a number"},
		{name: "empty view", arg: "1", count: 0, wantErr: "no visible todos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRow(tt.arg, tt.count)
			if tt.wantErr != "" {
				if !errors.Is(err, errInvalidRow) {
					t.Fatalf("expected errInvalidRow, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("parse row: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseRowsRejectsRepeats(t *testing.T) {
	got, err := parseRows([]string{"2", "1"}, 3)
	if err != nil {
		t.Fatalf("parse rows: %v", err)
	}
	if !slices.Equal(got, []int{1, 0}) {
		t.Fatalf("expected [1 0], got %v", got)
	}

	if _, err := parseRows([]string{"1", "1"}, 3); !errors.Is(err, errInvalidRow) {
		t.Fatalf("expected errInvalidRow for repeated row, got %v", err)
	}
}

func TestMoveEdit(t *testing.T) {
	edits := []todo.ProposedEdit{
		{Description: "a"}, {Description: "b"}, {Description: "c"}, {Description: "d"},
	}

	tests := []struct {
		from, to int
		want     []string
	}{
		{from: 2, to: 0, want: []string{"c", "a", "b", "d"}},
		{from: 0, to: 3, want: []string{"b", "c", "d", "a"}},
		{from: 1, to: 2, want: []string{"a", "c", "b", "d"}},
		{from: 3, to: 3, want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		moved := moveEdit(edits, tt.from, tt.to)
		var got []string
		for _, edit := range moved {
			got = append(got, edit.Description)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("moveEdit(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if edits[0].Description != "a" || edits[3].Description != "d" {
		t.Fatalf("expected input edits to be untouched, got %v", edits)
	}
}

func TestResolveKey(t *testing.T) {
	t.Setenv("MDTODO_USER", "")
	original := lookupLoginName
	lookupLoginName = func() (string, error) { return "login", nil }
	t.Cleanup(func() { lookupLoginName = original })

	now := time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		key, err := resolveKey(keyOptions{}, &config.Config{}, now)
		if err != nil {
			t.Fatalf("resolve key: %v", err)
		}
		want := todo.Key{User: "login", Year: 2025, Project: todo.DefaultProject}
		if key != want {
			t.Fatalf("expected %+v, got %+v", want, key)
		}
	})

	t.Run("config", func(t *testing.T) {
		cfg := &config.Config{User: "cfg", DefaultProject: "work"}
		key, err := resolveKey(keyOptions{}, cfg, now)
		if err != nil {
			t.Fatalf("resolve key: %v", err)
		}
		if key.User != "cfg" || key.Project != "work" {
			t.Fatalf("expected config values, got %+v", key)
		}
	})

	t.Run("environment beats config", func(t *testing.T) {
		t.Setenv("MDTODO_USER", "env")
		key, err := resolveKey(keyOptions{}, &config.Config{User: "cfg"}, now)
		if err != nil {
			t.Fatalf("resolve key: %v", err)
		}
		if key.User != "env" {
			t.Fatalf("expected env user, got %q", key.User)
		}
	})

	t.Run("flags beat everything", func(t *testing.T) {
		t.Setenv("MDTODO_USER", "env")
		opts := keyOptions{user: "flag", year: 2024, project: "trip"}
		key, err := resolveKey(opts, &config.Config{User: "cfg", DefaultProject: "work"}, now)
		if err != nil {
			t.Fatalf("resolve key: %v", err)
		}
		want := todo.Key{User: "flag", Year: 2024, Project: "trip"}
		if key != want {
			t.Fatalf("expected %+v, got %+v", want, key)
		}
	})

	t.Run("invalid user", func(t *testing.T) {
		_, err := resolveKey(keyOptions{user: "../etc"}, nil, now)
		if !errors.Is(err, todo.ErrInvalidKey) {
			t.Fatalf("expected ErrInvalidKey, got %v", err)
		}
	})

	t.Run("no login name", func(t *testing.T) {
		lookupLoginName = func() (string, error) { return "", errors.New("no passwd entry") }
		if _, err := resolveKey(keyOptions{}, nil, now); err == nil {
			t.Fatalf("expected error without any user")
		}
	})
}

func TestRowState(t *testing.T) {
	now := time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)
	date := func(text string) *todo.DateSpec {
		parsed, ok := todo.ParseDate(text)
		if !ok {
			t.Fatalf("parse date %q", text)
		}
		return &parsed
	}

	tests := []struct {
		name   string
		record todo.Record
		want   ui.RowState
	}{
		{name: "open", record: todo.Record{CreateDate: date("02-nov-2025")}, want: ui.RowNormal},
		{name: "done", record: todo.Record{IsComplete: true, Link: todo.NewLink("Trip")}, want: ui.RowDone},
		{name: "linked", record: todo.Record{CreateDate: date("02-nov-2025"), Link: todo.NewLink("Trip")}, want: ui.RowLinked},
		{name: "upcoming", record: todo.Record{CreateDate: date("09:00:00 10-nov-2025")}, want: ui.RowUpcoming},
		{name: "old", record: todo.Record{CreateDate: date("09:00:00 01-oct-2025")}, want: ui.RowOld},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rowState(tt.record, now); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDescriptionAliasUsesSingleFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var description string
	cmd.Flags().StringVar(&description, "description", "", "Description")
	addDescriptionFlagAliases(cmd)

	if err := cmd.Flags().Set("desc", "hello"); err != nil {
		t.Fatalf("set desc alias: %v", err)
	}
	if description != "hello" {
		t.Fatalf("expected description to be set via alias, got %q", description)
	}

	usage := cmd.Flags().FlagUsages()
	if strings.Contains(usage, "--desc ") {
		t.Fatalf("did not expect alias to appear in usage, got %q", usage)
	}
}

func TestShouldUseEditor(t *testing.T) {
	tests := []struct {
		name        string
		hasFlags    bool
		edit        bool
		noEdit      bool
		interactive bool
		want        bool
	}{
		{name: "interactive without flags", interactive: true, want: true},
		{name: "not interactive", want: false},
		{name: "flags given", hasFlags: true, interactive: true, want: false},
		{name: "forced", hasFlags: true, edit: true, want: true},
		{name: "suppressed", noEdit: true, interactive: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldUseEditor(tt.hasFlags, tt.edit, tt.noEdit, tt.interactive)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEmptyListMessage(t *testing.T) {
	if got := emptyListMessage(0, false); got != "No todos found." {
		t.Fatalf("unexpected message for empty list: %q", got)
	}
	if got := emptyListMessage(2, false); !strings.Contains(got, "--all") {
		t.Fatalf("expected hint about --all, got %q", got)
	}
}
