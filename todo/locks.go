package todo

import (
	"slices"
	"sync"
)

// keyedMutex hands out one mutex per file path. Entries are dropped once no
// caller holds or waits on them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock locks every path, in sorted order, and returns the matching unlock.
func (k *keyedMutex) Lock(paths ...string) func() {
	ordered := sortedUnique(paths)

	entries := make([]*keyedEntry, 0, len(ordered))
	for _, path := range ordered {
		entry := k.acquire(path)
		entry.mu.Lock()
		entries = append(entries, entry)
	}

	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
			k.release(ordered[i])
		}
	}
}

func (k *keyedMutex) acquire(path string) *keyedEntry {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry, ok := k.locks[path]
	if !ok {
		entry = &keyedEntry{}
		k.locks[path] = entry
	}
	entry.refs++
	return entry
}

func (k *keyedMutex) release(path string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry, ok := k.locks[path]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, path)
	}
}

func sortedUnique(paths []string) []string {
	ordered := slices.Clone(paths)
	slices.Sort(ordered)
	return slices.Compact(ordered)
}
