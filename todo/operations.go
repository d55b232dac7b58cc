package todo

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Save merges a client's proposed view into the list for key and writes the
// result. The list must exist.
func (s *Store) Save(key Key, edits []ProposedEdit, now time.Time) ([]Record, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	var merged []Record
	err = s.withLock([]string{path}, func() error {
		data, err := readListFile(path, key)
		if err != nil {
			return err
		}
		authoritative := Parse(string(data))
		merged = Reconcile(authoritative, edits, DateOf(now))
		if err := writeListFile(path, Serialize(merged, DayOf(now))); err != nil {
			return err
		}
		s.logger.Debug("saved todo list", "key", key.String(), "edits", len(edits), "before", len(authoritative), "after", len(merged))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// Add parses input as a new todo and appends it to the list for key,
// creating the list if it does not exist.
func (s *Store) Add(key Key, input string, now time.Time) (Record, error) {
	record, err := ParseInput(input, now)
	if err != nil {
		return Record{}, err
	}

	path, err := s.Path(key)
	if err != nil {
		return Record{}, err
	}

	err = s.withLock([]string{path}, func() error {
		authoritative, err := readOrEmpty(path, key)
		if err != nil {
			return err
		}
		merged := Reconcile(authoritative, []ProposedEdit{AddEdit(record)}, DateOf(now))
		return writeListFile(path, Serialize(merged, DayOf(now)))
	})
	if err != nil {
		return Record{}, fmt.Errorf("add todo: %w", err)
	}

	s.logger.Info("added todo", "key", key.String(), "todo", record.Key().String())
	return record, nil
}

// Delete removes every record matching match from the list for key and
// returns the first one removed.
func (s *Store) Delete(key Key, match MatchKey, now time.Time) (Record, error) {
	path, err := s.Path(key)
	if err != nil {
		return Record{}, err
	}

	var removed Record
	err = s.withLock([]string{path}, func() error {
		data, err := readListFile(path, key)
		if err != nil {
			return err
		}
		var kept []Record
		removed, kept, err = extract(Parse(string(data)), match)
		if err != nil {
			return err
		}
		return writeListFile(path, Serialize(Sort(kept), DayOf(now)))
	})
	if err != nil {
		return Record{}, fmt.Errorf("delete todo: %w", err)
	}

	s.logger.Info("deleted todo", "key", key.String(), "todo", match.String())
	return removed, nil
}

// Move takes the records matching match out of the list for key and appends
// them to the project named target in the same user and year, creating that
// list if needed. The target is written first, so a failure part way leaves a
// duplicate rather than losing the todo.
func (s *Store) Move(key Key, match MatchKey, target string, now time.Time) (Record, error) {
	match = match.canonical()
	targetKey := key.WithProject(target)
	if SanitizeProject(targetKey.Project) == SanitizeProject(key.Project) {
		return Record{}, ErrSameProject
	}

	sourcePath, err := s.Path(key)
	if err != nil {
		return Record{}, err
	}
	targetPath, err := s.Path(targetKey)
	if err != nil {
		return Record{}, err
	}

	var moved Record
	err = s.withLock([]string{sourcePath, targetPath}, func() error {
		data, err := readListFile(sourcePath, key)
		if err != nil {
			return err
		}
		source := Parse(string(data))

		var kept []Record
		moved, kept, err = extract(source, match)
		if err != nil {
			return err
		}

		destination, err := readOrEmpty(targetPath, targetKey)
		if err != nil {
			return err
		}
		for _, record := range source {
			if record.Key() == match {
				destination = append(destination, record)
			}
		}

		if err := writeListFile(targetPath, Serialize(Sort(destination), DayOf(now))); err != nil {
			return err
		}
		return writeListFile(sourcePath, Serialize(Sort(kept), DayOf(now)))
	})
	if err != nil {
		return Record{}, fmt.Errorf("move todo: %w", err)
	}

	s.logger.Info("moved todo", "from", key.String(), "to", targetKey.String(), "todo", match.String())
	return moved, nil
}

// Create writes an empty list for key.
func (s *Store) Create(key Key) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	err = s.withLock([]string{path}, func() error {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrProjectExists, key)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", key, err)
		}
		return writeListFile(path, "")
	})
	if err != nil {
		return err
	}

	s.logger.Info("created todo list", "key", key.String())
	return nil
}

// withLock serialises fn against every other writer of paths.
func (s *Store) withLock(paths []string, fn func() error) error {
	unlock := s.locks.Lock(paths...)
	defer unlock()

	ordered := sortedUnique(paths)
	locked := fn
	for i := len(ordered) - 1; i >= 0; i-- {
		path, inner := ordered[i], locked
		locked = func() error {
			return withFileLock(path, inner)
		}
	}
	return locked()
}

func readOrEmpty(path string, key Key) ([]Record, error) {
	data, err := readListFile(path, key)
	if errors.Is(err, ErrProjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// extract splits records into the first match and the records that do not
// match.
func extract(records []Record, match MatchKey) (Record, []Record, error) {
	match = match.canonical()
	var first *Record
	kept := make([]Record, 0, len(records))
	for i := range records {
		if records[i].Key() == match {
			if first == nil {
				first = &records[i]
			}
			continue
		}
		kept = append(kept, records[i])
	}
	if first == nil {
		return Record{}, nil, fmt.Errorf("%w: %s", ErrRecordNotFound, match)
	}
	return *first, kept, nil
}
