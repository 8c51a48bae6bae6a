package versioncache_test

import (
	"fmt"
	"sync"
	"testing"

	"scene-sync/core/element"
	"scene-sync/core/versioncache"

	"github.com/stretchr/testify/assert"
)

func scene(versions ...int64) element.Scene {
	var s element.Scene
	for i, v := range versions {
		e := element.New(element.KindEllipse, fmt.Sprintf("e%d", i))
		e.Version = v
		s = append(s, e)
	}
	return s
}

func TestCache_GetSet(t *testing.T) {
	c := versioncache.New()

	_, ok := c.Get("conn-1")
	assert.False(t, ok)

	c.Set("conn-1", scene(2, 3))
	v, ok := c.Get("conn-1")
	assert.True(t, ok)
	assert.Equal(t, int64(5), v)

	_, ok = c.Get("conn-2")
	assert.False(t, ok)
}

func TestCache_IsAlreadySynced(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(c *versioncache.Cache)
		connID string
		scene  element.Scene
		want   bool
	}{
		{"NoConnection", func(c *versioncache.Cache) {}, "", scene(1), true},
		{"NeverSynced", func(c *versioncache.Cache) {}, "conn", scene(1), false},
		{"SameVersion", func(c *versioncache.Cache) { c.Set("conn", scene(1, 1)) }, "conn", scene(2), true},
		{"NewerScene", func(c *versioncache.Cache) { c.Set("conn", scene(1)) }, "conn", scene(2), false},
		{"OtherConnection", func(c *versioncache.Cache) { c.Set("other", scene(1)) }, "conn", scene(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := versioncache.New()
			tt.setup(c)
			assert.Equal(t, tt.want, c.IsAlreadySynced(tt.connID, tt.scene))
		})
	}
}

func TestCache_Remove(t *testing.T) {
	c := versioncache.New()
	c.Set("conn-1", scene(1))
	c.Set("conn-2", scene(1))
	assert.Equal(t, 2, c.Len())

	c.Remove("conn-1")
	_, ok := c.Get("conn-1")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
	assert.False(t, c.IsAlreadySynced("conn-1", scene(1)))

	// Removing an unknown connection is a no-op.
	c.Remove("missing")
	assert.Equal(t, 1, c.Len())
}

func TestCache_SetIgnoresEmptyConnection(t *testing.T) {
	c := versioncache.New()
	c.Set("", scene(1))
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentConnections(t *testing.T) {
	c := versioncache.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("conn-%d", i)
			c.Set(id, scene(int64(i)))
			assert.True(t, c.IsAlreadySynced(id, scene(int64(i))))
			c.Remove(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, c.Len())
}
