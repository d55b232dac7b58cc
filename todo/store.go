package todo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"
	"golang.org/x/term"
)

const (
	// FileExtension is the suffix of list files.
	FileExtension = ".md"

	lockSuffix = ".lock"
	dirPerms   = 0o755
	filePerms  = 0o644
)

// Key names one list file.
type Key struct {
	User    string `json:"user"`
	Year    int    `json:"year"`
	Project string `json:"project"`
}

// String renders the key as user/year/project.
func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%s", k.User, k.Year, SanitizeProject(k.Project))
}

// WithProject returns a copy of the key naming another project.
func (k Key) WithProject(project string) Key {
	k.Project = project
	return k
}

var projectUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeProject maps a project name onto a safe file name: anything other
// than letters, digits, '_' and '-' becomes '_', surrounding underscores are
// trimmed and an empty result becomes "default".
func SanitizeProject(project string) string {
	sanitized := strings.Trim(projectUnsafe.ReplaceAllString(project, "_"), "_")
	if sanitized == "" {
		return "default"
	}
	return sanitized
}

// Store reads and writes list files under a root directory. All writes for
// one key are serialised: in process by a keyed mutex, across processes by an
// advisory lock on a sidecar file. Every operation reads the file afresh.
type Store struct {
	root     string
	logger   *log.Logger
	prompter Prompter
	prompt   bool
	locks    *keyedMutex
}

// Prompter is used to ask the user for confirmation.
type Prompter interface {
	// Confirm asks the user a yes/no question and returns true if they say yes.
	Confirm(message string) (bool, error)
}

// StdioPrompter implements Prompter using stdin/stdout.
type StdioPrompter struct{}

// Confirm asks the user a yes/no question via stdin/stdout.
func (p StdioPrompter) Confirm(message string) (bool, error) {
	fmt.Printf("%s [y/n]: ", message)
	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false, err
	}
	return response == "y" || response == "Y" || response == "yes" || response == "Yes", nil
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Logger receives store events. If nil, events are discarded.
	Logger *log.Logger

	// Prompter is used for user confirmation. If nil, StdioPrompter is used.
	Prompter Prompter

	// PromptToCreate lets OfferCreate ask before creating a missing list.
	// When false, OfferCreate never creates anything.
	PromptToCreate bool
}

// Open opens the store rooted at root, creating the directory if needed.
func Open(root string, opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("todo store root is empty")
	}
	if err := os.MkdirAll(root, dirPerms); err != nil {
		return nil, fmt.Errorf("create todo root: %w", err)
	}

	prompter := opts.Prompter
	usesStdio := prompter == nil
	if usesStdio {
		prompter = StdioPrompter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Store{
		root:     root,
		logger:   logger,
		prompter: prompter,
		prompt:   opts.PromptToCreate && (!usesStdio || term.IsTerminal(int(os.Stdin.Fd()))),
		locks:    newKeyedMutex(),
	}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file path for key.
func (s *Store) Path(key Key) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, strings.TrimSpace(key.User), strconv.Itoa(key.Year), SanitizeProject(key.Project)+FileExtension), nil
}

// Exists reports whether the list file for key exists.
func (s *Store) Exists(key Key) (bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", key, err)
	}
	return true, nil
}

// Raw returns the bytes of the list file for key.
func (s *Store) Raw(key Key) ([]byte, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	return readListFile(path, key)
}

// Records parses the list file for key.
func (s *Store) Records(key Key) ([]Record, error) {
	data, err := s.Raw(key)
	if err != nil {
		return nil, err
	}
	records := Parse(string(data))
	s.logger.Debug("loaded todo list", "key", key.String(), "records", len(records))
	return records, nil
}

// Projects lists the project names stored for a user and year, sorted.
func (s *Store) Projects(user string, year int) ([]string, error) {
	key := Key{User: user, Year: year, Project: DefaultProject}
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, FileExtension) {
			continue
		}
		projects = append(projects, strings.TrimSuffix(name, FileExtension))
	}
	slices.Sort(projects)
	return projects, nil
}

// OfferCreate asks whether to create the missing list for key and creates it
// on confirmation. It returns false without asking when prompting is off.
func (s *Store) OfferCreate(key Key) (bool, error) {
	if !s.prompt {
		return false, nil
	}
	confirmed, err := s.prompter.Confirm(fmt.Sprintf("No todo list %s found. Create one?", key))
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	if !confirmed {
		return false, nil
	}
	if err := s.Create(key); err != nil && !errors.Is(err, ErrProjectExists) {
		return false, err
	}
	return true, nil
}

func readListFile(path string, key Key) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// writeListFile replaces the file at path without ever truncating it in
// place: content goes to a temp file that is renamed over the original.
func writeListFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(content))); err != nil {
		return fmt.Errorf("write todo list: %w", err)
	}
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("set todo list permissions: %w", err)
	}
	return nil
}

// withFileLock executes fn while holding an exclusive lock on path's sidecar
// lock file. The data file itself is replaced by rename, so it cannot carry
// the lock.
func withFileLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.OpenFile(path+lockSuffix, os.O_CREATE|os.O_RDWR, filePerms)
	if err != nil {
		return fmt.Errorf("open file for locking: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}
