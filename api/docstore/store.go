// Package docstore maintains the local documentation cache snapshot.
//
// The snapshot records the outcome of the last refresh: when it ran, whether
// Context7 was reachable, and the documentation fetched per tracked library.
// It is a single JSON file so the status command and the enhance matcher can
// read it without talking to Context7.
package docstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/yomek/c7ctl/api/cache"
)

// ErrorCode defines error types for docstore operations
type ErrorCode string

const (
	ErrSnapshotParse ErrorCode = "SnapshotParse"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// SnapshotFileName is the cache snapshot file name
const SnapshotFileName = "context7_cache.json"

// SourceEntry is a fetched docs source page
type SourceEntry struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`

	// Content is markdown extracted from the page
	Content string `json:"content,omitempty"`
}

// LibraryEntry is the cached documentation state for one library
type LibraryEntry struct {
	Name      string `json:"name"`
	LibraryID string `json:"library_id,omitempty"`
	Topic     string `json:"topic,omitempty"`

	// Content is the documentation markdown returned by Context7
	Content string `json:"content,omitempty"`

	// Sources are additional docs pages configured for the library
	Sources []SourceEntry `json:"sources,omitempty"`

	FetchedAt  time.Time `json:"fetched_at"`
	FetchError string    `json:"fetch_error,omitempty"`
}

// Snapshot is the persisted result of the last refresh
type Snapshot struct {
	LastRefresh time.Time `json:"last_refresh"`

	// Available records whether Context7 answered the handshake during the
	// last refresh
	Available bool `json:"context7_status"`

	// ServerTools lists the tools the Context7 server advertised
	ServerTools []string `json:"server_tools,omitempty"`

	Libraries map[string]LibraryEntry `json:"libraries"`
}

// DefaultPath returns the snapshot location under the cache directory
func DefaultPath() string {
	return filepath.Join(cache.DefaultDir, SnapshotFileName)
}

// Load reads a snapshot. A missing file yields an empty snapshot.
func Load(path string) (*Snapshot, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{Libraries: map[string]LibraryEntry{}}, nil
		}
		return nil, failure.Wrap(err, failure.Context{"path": path})
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, failure.New(ErrSnapshotParse,
			failure.Message("Documentation cache is corrupted, run refresh to rebuild it"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}
	if snap.Libraries == nil {
		snap.Libraries = map[string]LibraryEntry{}
	}

	return &snap, nil
}

// Save writes the snapshot atomically
func (s *Snapshot) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return failure.Wrap(err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return failure.Wrap(err, failure.Context{"path": tmp})
	}
	if err := os.Rename(tmp, path); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}
	return nil
}

// IsEmpty reports whether the snapshot has never been refreshed
func (s *Snapshot) IsEmpty() bool {
	return s.LastRefresh.IsZero() && len(s.Libraries) == 0
}

// Entry returns the cached entry for a library name
func (s *Snapshot) Entry(name string) (LibraryEntry, bool) {
	e, ok := s.Libraries[name]
	return e, ok
}
