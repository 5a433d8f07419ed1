package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheHelperWithoutCache(t *testing.T) {
	var helper *CacheHelper[int]
	var out int
	calls := 0
	hit := helper.Handle(context.Background(), "k", &out, func() int {
		calls++
		return 42
	})
	assert.False(t, hit)
	assert.Equal(t, 42, out)
	assert.Equal(t, 1, calls)
}

func TestCacheHelperPrefixesKeys(t *testing.T) {
	cache := &memoryCache{data: map[string][]byte{}}
	helper := NewCacheHelper[[]string](cache, "p:", time.Minute)

	var out []string
	assert.False(t, helper.Handle(context.Background(), "a", &out, func() []string { return []string{"x"} }))
	out = nil
	assert.True(t, helper.Handle(context.Background(), "a", &out, func() []string { return nil }))
	assert.Equal(t, []string{"x"}, out)
	assert.Contains(t, cache.data, "p:a")
}

func TestLocalCacheExpires(t *testing.T) {
	c := &Cache{memCache: map[string]LocalEntry{}, localTTL: time.Minute}
	c.setLocal("fresh", []byte(`1`), time.Hour)
	c.memCache["old"] = LocalEntry{Expires: time.Now().Add(-time.Second), Data: []byte(`2`)}

	data, ok := c.getLocal("fresh")
	assert.True(t, ok)
	assert.Equal(t, []byte(`1`), data)
	_, ok = c.getLocal("old")
	assert.False(t, ok)
	assert.NotContains(t, c.memCache, "old")
}
