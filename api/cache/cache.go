package cache

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// DefaultTTL is the default time-to-live for cached entries
	DefaultTTL = 24 * time.Hour

	// DefaultDir is the root cache directory
	DefaultDir string
)

func init() {
	cacheHome, err := os.UserCacheDir()
	if err != nil {
		DefaultDir = filepath.Join(os.TempDir(), "c7ctl")
	} else {
		DefaultDir = filepath.Join(cacheHome, "c7ctl")
	}
}

// Entry represents a cached item
type Entry[T any] struct {
	Value     T
	CreatedAt time.Time
}

// Cache provides a generic file-backed caching mechanism.
// Entries are gob-encoded under DefaultDir/<namespace>.
type Cache[T any] struct {
	dir string
	ttl time.Duration
}

// New creates a cache for the given namespace
func New[T any](namespace string) *Cache[T] {
	return &Cache[T]{
		dir: filepath.Join(DefaultDir, namespace),
		ttl: DefaultTTL,
	}
}

// normalizeKey converts a cache key into a filesystem-safe format
func normalizeKey(key string) string {
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, key)

	// Collapse consecutive dots, they have path meaning
	for strings.Contains(normalized, "..") {
		normalized = strings.ReplaceAll(normalized, "..", ".")
	}

	return normalized
}

// GetOrSet retrieves a value from cache or stores it if it doesn't exist.
// The forceUpdate parameter skips the cache read and always regenerates.
func (c *Cache[T]) GetOrSet(key string, fn func() (T, error), forceUpdate bool) (T, error) {
	path := c.entryPath(key)

	if !forceUpdate {
		if entry, err := c.loadEntry(path); err == nil {
			if time.Since(entry.CreatedAt) < c.ttl {
				return entry.Value, nil
			}
		}
	}

	value, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}

	entry := Entry[T]{
		Value:     value,
		CreatedAt: time.Now(),
	}

	if err := c.saveEntry(path, entry); err != nil {
		return value, err // the generated value is still usable
	}

	return value, nil
}

// Get retrieves a fresh cached value without generating a new one
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	entry, err := c.loadEntry(c.entryPath(key))
	if err != nil {
		return zero, false
	}
	if time.Since(entry.CreatedAt) >= c.ttl {
		return zero, false
	}
	return entry.Value, true
}

func (c *Cache[T]) entryPath(key string) string {
	return filepath.Join(c.dir, normalizeKey(key)+".gob")
}

func (c *Cache[T]) loadEntry(path string) (*Entry[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entry Entry[T]
	if err := gob.NewDecoder(f).Decode(&entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (c *Cache[T]) saveEntry(path string, entry Entry[T]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewEncoder(f).Encode(entry)
}

// Clear removes all cached entries in this namespace
func (c *Cache[T]) Clear() error {
	return os.RemoveAll(c.dir)
}

// SetTTL updates the cache TTL
func (c *Cache[T]) SetTTL(d time.Duration) {
	c.ttl = d
}

// SetDir updates the cache directory
func (c *Cache[T]) SetDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	c.dir = dir
	return nil
}
