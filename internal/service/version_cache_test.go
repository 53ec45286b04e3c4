package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scorebook-app/scorebook/models"
)

func TestVersionCache(t *testing.T) {
	c := NewVersionCache()
	ref := models.EntityRef{Kind: models.KindGame, ID: "g-1"}

	_, ok := c.Get(ref)
	assert.False(t, ok)

	c.Set(ref, 3)
	v, ok := c.Get(ref)
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)

	c.Set(ref, 4)
	v, _ = c.Get(ref)
	assert.Equal(t, int64(4), v)

	c.Invalidate(ref)
	_, ok = c.Get(ref)
	assert.False(t, ok)

	c.Set(ref, 1)
	c.Set(models.EntityRef{Kind: models.KindRoster, ID: "r-1"}, 7)
	c.Clear()
	_, ok = c.Get(ref)
	assert.False(t, ok)
}

func TestVersionCacheConcurrentAccess(t *testing.T) {
	c := NewVersionCache()
	ref := models.EntityRef{Kind: models.KindSettings, ID: "prefs"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := int64(0); j < 100; j++ {
				c.Set(ref, n*100+j)
				c.Get(ref)
			}
		}(int64(i))
	}
	wg.Wait()

	_, ok := c.Get(ref)
	assert.True(t, ok)
}
