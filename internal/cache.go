package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	tt "github.com/gnolang/linelint/internal/types"
)

const (
	cacheFileName   = "linelint_cache.gob"
	defaultCacheAge = 7 * 24 * time.Hour
)

type fileMetadata struct {
	Hash        string
	Fingerprint string
}

type CacheEntry struct {
	Metadata  fileMetadata
	Issues    []tt.Issue
	CreatedAt time.Time
}

// Cache remembers check results per file. An entry is only reused while the
// file content and the configuration fingerprint are unchanged.
type Cache struct {
	CacheDir string
	fs       afero.Fs
	entries  map[string]CacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
	dirty    bool
}

func NewCache(fs afero.Fs, cacheDir string) (*Cache, error) {
	if err := fs.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		fs:       fs,
		entries:  make(map[string]CacheEntry),
		maxAge:   defaultCacheAge,
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Cache) load() error {
	file, err := c.fs.Open(c.path())
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

// Save writes the cache to disk if it changed since it was loaded.
func (c *Cache) Save() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.dirty {
		return nil
	}

	file, err := c.fs.Create(c.path())
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	c.dirty = false
	return nil
}

func (c *Cache) Set(filename, content, fingerprint string, issues []tt.Issue) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[filename] = CacheEntry{
		Metadata:  fileMetadata{Hash: contentHash(content), Fingerprint: fingerprint},
		Issues:    issues,
		CreatedAt: time.Now(),
	}
	c.dirty = true
}

func (c *Cache) Get(filename, content, fingerprint string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	want := fileMetadata{Hash: contentHash(content), Fingerprint: fingerprint}
	if c.isEntryInvalid(entry, want) {
		delete(c.entries, filename)
		c.dirty = true
		return nil, false
	}

	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(entry CacheEntry, want fileMetadata) bool {
	// too old
	if time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	return entry.Metadata != want
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	c.entries = make(map[string]CacheEntry)
	c.dirty = true
	c.mutex.Unlock()

	_ = c.Save() // ignore error as this is a manual operation
}

func contentHash(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}
