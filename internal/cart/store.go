package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage keys mirror the storefront's client-local namespace.
const (
	cartStorageKey     = "tamaravastra-cart"
	searchesStorageKey = "tamaravastra-recent-searches"

	maxRecentSearches = 5
)

// LineStore persists a cart's full line set. Writes are best-effort from the
// cart's point of view; implementations just report the failure.
type LineStore interface {
	Save(lines []Line) error
	Load() ([]Line, error)
}

// FileStore keeps the serialized line set in a single JSON file under a fixed
// key inside dir, one file per session.
type FileStore struct {
	dir     string
	session string
}

// NewFileStore creates a store rooted at dir for the given session ID.
func NewFileStore(dir, session string) *FileStore {
	return &FileStore{dir: dir, session: session}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", cartStorageKey, s.session))
}

// Save writes the full line set, replacing any previous copy.
func (s *FileStore) Save(lines []Line) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cart storage dir: %w", err)
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart lines: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}

// Load reads the persisted line set. A missing file is an empty cart.
func (s *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart lines: %w", err)
	}
	return lines, nil
}

// MemoryStore is an in-memory LineStore for tests and sessions without a
// storage directory.
type MemoryStore struct {
	lines []Line
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(lines []Line) error {
	s.lines = make([]Line, len(lines))
	copy(s.lines, lines)
	return nil
}

func (s *MemoryStore) Load() ([]Line, error) {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

// SearchHistory keeps the most recent search queries for a session, newest
// first, capped at five. Re-searching an existing query moves it to the
// front instead of duplicating it.
type SearchHistory struct {
	dir     string
	session string
	queries []string
}

// NewSearchHistory loads the persisted history for the session, if any.
func NewSearchHistory(dir, session string) *SearchHistory {
	h := &SearchHistory{dir: dir, session: session}
	data, err := os.ReadFile(h.path())
	if err == nil {
		// Ignore a corrupt history file; it regenerates on the next search.
		_ = json.Unmarshal(data, &h.queries)
	}
	return h
}

func (h *SearchHistory) path() string {
	return filepath.Join(h.dir, fmt.Sprintf("%s-%s.json", searchesStorageKey, h.session))
}

// Add records a query at the front of the history and persists best-effort.
func (h *SearchHistory) Add(query string) {
	if query == "" {
		return
	}
	kept := make([]string, 0, len(h.queries)+1)
	kept = append(kept, query)
	for _, q := range h.queries {
		if q != query {
			kept = append(kept, q)
		}
	}
	if len(kept) > maxRecentSearches {
		kept = kept[:maxRecentSearches]
	}
	h.queries = kept

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return
	}
	data, err := json.Marshal(h.queries)
	if err != nil {
		return
	}
	_ = os.WriteFile(h.path(), data, 0o644)
}

// Queries returns the recorded queries, newest first.
func (h *SearchHistory) Queries() []string {
	out := make([]string, len(h.queries))
	copy(out, h.queries)
	return out
}
