package link

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Index is an in-memory SHA→session-id map, persisted as a single
// snapshot file at <repo>/.prv/index.json. It is a rebuildable cache:
// losing it costs a rebuild from the Store, never correctness.
type Index struct {
	entries map[string]int64
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]int64)}
}

func indexPath(repoRoot, storeDir string) string {
	if storeDir == "" {
		storeDir = ".prv"
	}
	return filepath.Join(repoRoot, storeDir, "index.json")
}

// LoadIndex loads the index from disk, returning an empty index if the
// snapshot file does not exist.
func LoadIndex(repoRoot, storeDir string) (*Index, error) {
	path := indexPath(repoRoot, storeDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewIndex(), nil
		}
		return nil, fmt.Errorf("reading index file: %w", err)
	}

	entries := make(map[string]int64)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing index file: %w", err)
	}
	return &Index{entries: entries}, nil
}

// Save serialises the index to its snapshot file, creating parent
// directories as needed.
func (idx *Index) Save(repoRoot, storeDir string) error {
	path := indexPath(repoRoot, storeDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	data, err := json.Marshal(idx.entries)
	if err != nil {
		return fmt.Errorf("serializing index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing index file: %w", err)
	}
	return nil
}

// Insert records a link's commit SHA → session id mapping. A later
// insert for an existing SHA overwrites the earlier one.
func (idx *Index) Insert(l Link) {
	idx.entries[l.CommitSHA] = l.SessionID
}

// Get returns the session id for a commit SHA, if present.
func (idx *Index) Get(commitSHA string) (int64, bool) {
	id, ok := idx.entries[commitSHA]
	return id, ok
}

// Contains reports whether commitSHA is present in the index.
func (idx *Index) Contains(commitSHA string) bool {
	_, ok := idx.entries[commitSHA]
	return ok
}

// Remove deletes an entry, returning the removed session id if present.
func (idx *Index) Remove(commitSHA string) (int64, bool) {
	id, ok := idx.entries[commitSHA]
	if ok {
		delete(idx.entries, commitSHA)
	}
	return id, ok
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// IsEmpty reports whether the index has no entries.
func (idx *Index) IsEmpty() bool {
	return len(idx.entries) == 0
}

// Each calls fn for every entry in the index. Iteration order is
// unspecified, matching Go map semantics.
func (idx *Index) Each(fn func(commitSHA string, sessionID int64)) {
	for sha, id := range idx.entries {
		fn(sha, id)
	}
}
