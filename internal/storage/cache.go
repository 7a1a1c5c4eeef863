package storage

import (
	"fmt"
	"sync"

	"github.com/nikbrunner/pouch/internal/model"
)

// Cache keeps the loaded store in memory for concurrent readers. Reload
// swaps it for a fresh copy from the backing Storage.
type Cache struct {
	backend Storage

	mu    sync.RWMutex
	store *model.Store

	writeMu sync.Mutex // serializes Update
}

// NewCache loads the store once and returns a cache over it.
func NewCache(backend Storage) (*Cache, error) {
	c := &Cache{backend: backend}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the backend. On failure the previous store is kept.
func (c *Cache) Reload() error {
	store, err := c.backend.Load()
	if err != nil {
		return fmt.Errorf("reload store: %w", err)
	}
	c.mu.Lock()
	c.store = store
	c.mu.Unlock()
	return nil
}

// Update loads the current store from the backend, applies fn and saves the
// result. The cache then serves the saved store. When fn fails nothing is
// written.
func (c *Cache) Update(fn func(*model.Store) error) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	store, err := c.backend.Load()
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	if err := fn(store); err != nil {
		return err
	}
	if err := c.backend.Save(store); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	c.mu.Lock()
	c.store = store
	c.mu.Unlock()
	return nil
}

// Bookmarks returns a copy of all bookmarks.
func (c *Cache) Bookmarks() []model.Bookmark {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Bookmark, len(c.store.Bookmarks))
	copy(out, c.store.Bookmarks)
	return out
}

// Bookmark returns the bookmark with the given ID.
func (c *Cache) Bookmark(id string) (model.Bookmark, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if b := c.store.GetBookmarkByID(id); b != nil {
		return *b, nil
	}
	return model.Bookmark{}, fmt.Errorf("bookmark %s: %w", id, ErrNotFound)
}

// TagNames implements TagRegistry.
func (c *Cache) TagNames() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.TagNames(), nil
}

// TagCounts implements TagRegistry.
func (c *Cache) TagCounts() ([]model.TagCount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.TagCounts(), nil
}

// Len returns the number of cached bookmarks.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store.Bookmarks)
}

// FolderPath implements model.Store.FolderPath over the cached store.
func (c *Cache) FolderPath(id *string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.FolderPath(id)
}
