package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists entries as one file per key. Collected page HTML lands
// here so a re-run of the collector does not re-fetch unchanged sites.
type DiskCache struct {
	dir        string
	defaultTTL time.Duration
}

// NewDiskCache creates a DiskCache rooted at dir
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, defaultTTL: ttl}
}

type diskEntry struct {
	Expires int64  `json:"expires"` // unix seconds
	Body    []byte `json:"body"`
}

func (e diskEntry) expired() bool {
	return time.Now().Unix() >= e.Expires
}

// Get returns the cached bytes for key. Expired entries are removed on read.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.entryPath(key)
	entry, err := readEntry(path)
	if err != nil {
		return nil, false
	}
	if entry.expired() {
		_ = os.Remove(path)
		return nil, false
	}
	return entry.Body, true
}

// Set stores value under key. ttl zero falls back to the cache default.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	entry := diskEntry{Expires: time.Now().Add(ttl).Unix(), Body: value}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := os.WriteFile(c.entryPath(key), data, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes key
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.entryPath(key))
}

// Clear removes the whole cache directory
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".cache")
}

func readEntry(path string) (diskEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diskEntry{}, err
	}
	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return diskEntry{}, fmt.Errorf("parse cache entry: %w", err)
	}
	return entry, nil
}
