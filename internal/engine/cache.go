package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"popdash/internal/models"
)

// Cache memoizes loaded datasets by file path and modification time, so
// per-request reads skip re-parsing until the source file changes. Datasets
// are immutable after load; the mutex only guards the entry map.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	ds      *models.Dataset
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Load returns the cached dataset for path, loading it on first use or
// when the file's modification time has changed since the cached load.
func (c *Cache) Load(path string) (*models.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.modTime.Equal(info.ModTime()) {
		return e.ds, nil
	}

	ds, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.entries[path] = &cacheEntry{modTime: info.ModTime(), ds: ds}
	return ds, nil
}
