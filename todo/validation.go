package todo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProjectNotFound is returned when a list file does not exist.
	ErrProjectNotFound = errors.New("todo list not found")

	// ErrProjectExists is returned when creating a list that already exists.
	ErrProjectExists = errors.New("todo list already exists")

	// ErrRecordNotFound is returned when no record matches a key.
	ErrRecordNotFound = errors.New("todo not found")

	// ErrInvalidKey is returned when a user, year or project cannot name a file.
	ErrInvalidKey = errors.New("invalid todo list key")

	// ErrEmptyDescription is returned when a new todo has no text.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidDate is returned when date text does not match the list format.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRecurrence is returned when a recurrence marker has no usable rule.
	ErrInvalidRecurrence = errors.New("invalid recurrence marker")

	// ErrSameProject is returned when moving a todo onto its own list.
	ErrSameProject = errors.New("source and target lists are the same")
)

const (
	minYear = 1
	maxYear = 9999
)

// ValidateKey checks that a key can be mapped to a file path.
func ValidateKey(key Key) error {
	user := strings.TrimSpace(key.User)
	if user == "" {
		return fmt.Errorf("%w: user cannot be empty", ErrInvalidKey)
	}
	if user == "." || user == ".." || strings.ContainsAny(user, `/\`) || strings.ContainsRune(user, 0) {
		return fmt.Errorf("%w: user %q", ErrInvalidKey, key.User)
	}
	if key.Year < minYear || key.Year > maxYear {
		return fmt.Errorf("%w: year %d", ErrInvalidKey, key.Year)
	}
	return nil
}
