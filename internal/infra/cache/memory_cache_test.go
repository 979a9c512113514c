package cache

import (
	"testing"
	"time"

	"wellness/config"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("events:all", []string{"a"}, 0)

	v, ok := c.Get("events:all")
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
}

func TestMemoryCache_DeletePrefix(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("events:all", 1, 0)
	c.Set("events:gold", 2, 0)
	c.Set("tiers", 3, 0)

	c.DeletePrefix("events:")

	_, ok := c.Get("events:all")
	assert.False(t, ok)
	_, ok = c.Get("events:gold")
	assert.False(t, ok)
	_, ok = c.Get("tiers")
	assert.True(t, ok)
}

func TestNewFromConfig(t *testing.T) {
	assert.NotNil(t, NewFromConfig(&config.Config{}))
	assert.NotNil(t, NewFromConfig(&config.Config{Cache: &config.CacheConfig{EventsTTL: time.Second}}))
}
