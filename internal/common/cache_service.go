package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-process cache backed by go-cache
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	return cs.cache.Get(key)
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

func (cs *CacheService) ItemCount() int {
	return cs.cache.ItemCount()
}

// Close drops every entry; the janitor stops with the cache
func (cs *CacheService) Close() error {
	cs.cache.Flush()
	return nil
}
