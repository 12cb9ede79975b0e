package repositories

import (
	"listing-slideshow/internal/utils"
	"listing-slideshow/pkg/cache"
	"listing-slideshow/pkg/logger"
)

type listingCache struct {
	store *cache.Cache
}

func NewListingCache() ListingCache {
	return &listingCache{
		store: cache.NewCache(),
	}
}

func (c *listingCache) Get(operation, key string) (interface{}, bool) {
	v, ok := c.store.Get(key)
	utils.RecordCacheLookup(operation, ok)
	if ok {
		logger.GlobalLogger.Debugf("Cache hit: key=%s", key)
	}
	return v, ok
}

func (c *listingCache) Set(key string, value interface{}) {
	c.store.Set(key, value)
}

func (c *listingCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *listingCache) ClearAll() {
	n := c.store.Len()
	c.store.Clear()
	logger.GlobalLogger.Debugf("Cache cleared: entries=%d", n)
}

func (c *listingCache) Len() int {
	return c.store.Len()
}

// cacheOrFetch returns the cached value for key, or calls fetch and stores
// its result. Failed fetches are not cached.
func cacheOrFetch[T any](c ListingCache, operation, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.Get(operation, key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
		logger.GlobalLogger.Warnf("Cache entry has unexpected type, refetching: key=%s", key)
		c.Delete(key)
	}

	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}
