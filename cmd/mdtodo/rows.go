package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amonks/mdtodo/internal/ui"
	"github.com/amonks/mdtodo/todo"
)

var errInvalidRow = errors.New("invalid row")

// parseRow converts a 1-based row argument into an index into a view of
// count rows.
func parseRow(arg string, count int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a number", errInvalidRow, arg)
	}
	if n < 1 || n > count {
		if count == 0 {
			return 0, fmt.Errorf("%w %d: the list has no visible todos", errInvalidRow, n)
		}
		return 0, fmt.Errorf("%w %d: expected 1-%d", errInvalidRow, n, count)
	}
	return n - 1, nil
}

// parseRows converts several row arguments, rejecting repeats.
func parseRows(args []string, count int) ([]int, error) {
	seen := make(map[int]bool, len(args))
	indexes := make([]int, 0, len(args))
	for _, arg := range args {
		idx, err := parseRow(arg, count)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w %s: given twice", errInvalidRow, arg)
		}
		seen[idx] = true
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

// moveEdit moves the edit at from to position to, shifting the others.
func moveEdit(edits []todo.ProposedEdit, from, to int) []todo.ProposedEdit {
	out := make([]todo.ProposedEdit, 0, len(edits))
	moved := edits[from]
	for i, edit := range edits {
		if i == from {
			continue
		}
		out = append(out, edit)
	}
	out = append(out[:to], append([]todo.ProposedEdit{moved}, out[to:]...)...)
	return out
}

func rowState(record todo.Record, now time.Time) ui.RowState {
	switch {
	case record.IsComplete:
		return ui.RowDone
	case record.HasLink():
		return ui.RowLinked
	case todo.IsUpcoming(record, now):
		return ui.RowUpcoming
	case todo.IsOld(record, now):
		return ui.RowOld
	default:
		return ui.RowNormal
	}
}

func checkbox(record todo.Record) string {
	if record.IsComplete {
		return "[x]"
	}
	return "[ ]"
}
