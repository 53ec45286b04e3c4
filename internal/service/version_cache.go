package service

import (
	"sync"

	"github.com/scorebook-app/scorebook/models"
)

// versionCache is an in-memory map of the last remote version counter
// confirmed per record. It is a performance hint, never a source of truth:
// losing it entirely only costs extra conflict rounds on the next pushes.
type versionCache struct {
	mu       sync.RWMutex
	versions map[models.EntityRef]int64
}

// NewVersionCache returns an empty [VersionCache].
func NewVersionCache() VersionCache {
	return &versionCache{versions: make(map[models.EntityRef]int64)}
}

func (c *versionCache) Get(ref models.EntityRef) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.versions[ref]
	return v, ok
}

func (c *versionCache) Set(ref models.EntityRef, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.versions[ref] = version
}

func (c *versionCache) Invalidate(ref models.EntityRef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.versions, ref)
}

func (c *versionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.versions = make(map[models.EntityRef]int64)
}
