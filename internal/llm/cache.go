package llm

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ProviderCache holds per-language provider handles for the translation
// stage. Construction is injected, the cache is owned by the orchestrator
// that creates it, and entries expire after the configured TTL.
type ProviderCache struct {
	cache   *gocache.Cache
	factory func(lang string) (Provider, error)
}

// NewProviderCache creates a provider cache with the given entry TTL
func NewProviderCache(ttl time.Duration, factory func(lang string) (Provider, error)) *ProviderCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ProviderCache{
		cache:   gocache.New(ttl, 2*ttl),
		factory: factory,
	}
}

// Get returns the provider for a source language, building it on first use
func (c *ProviderCache) Get(lang string) (Provider, error) {
	if v, found := c.cache.Get(lang); found {
		return v.(Provider), nil
	}

	p, err := c.factory(lang)
	if err != nil {
		return nil, fmt.Errorf("build provider for language %q: %w", lang, err)
	}

	c.cache.SetDefault(lang, p)
	return p, nil
}

// Flush drops all cached handles
func (c *ProviderCache) Flush() {
	c.cache.Flush()
}
