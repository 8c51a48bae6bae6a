package versioncache

import (
	"sync"

	"scene-sync/core/element"
)

// Cache maps connection ids to the last synced scene version.
// Distinct connections never contend on the same entry; saves for one
// connection are expected to be serialized by the caller.
type Cache struct {
	mu       sync.RWMutex
	versions map[string]int64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{versions: make(map[string]int64)}
}

// Get returns the last synced version for a connection.
func (c *Cache) Get(connectionID string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.versions[connectionID]
	return v, ok
}

// Set records the version of scene as synced for a connection.
// An empty connection id is ignored.
func (c *Cache) Set(connectionID string, scene element.Scene) {
	if connectionID == "" {
		return
	}
	c.mu.Lock()
	c.versions[connectionID] = scene.Version()
	c.mu.Unlock()
}

// IsAlreadySynced reports whether scene matches the last version synced over
// the connection. Without a connection there is nothing to sync, so it
// reports true.
func (c *Cache) IsAlreadySynced(connectionID string, scene element.Scene) bool {
	if connectionID == "" {
		return true
	}
	v, ok := c.Get(connectionID)
	return ok && v == scene.Version()
}

// Remove drops the entry for a closed connection.
func (c *Cache) Remove(connectionID string) {
	c.mu.Lock()
	delete(c.versions, connectionID)
	c.mu.Unlock()
}

// Len returns the number of tracked connections.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.versions)
}
