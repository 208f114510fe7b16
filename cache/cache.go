package cache

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"
)

type ICache interface {
	Set(key string, entry []byte) error

	Get(key string) ([]byte, error)
}

// Cache is the process-local cache used for resolved wallet tokens. Entries
// share one expiry; an expired login token falls back to signature recovery.
type Cache struct {
	Cache ICache
}

func NewLocalCache(allKeysExpTime time.Duration) (*Cache, error) {
	cache, err := NewBigCache(allKeysExpTime)
	if err != nil {
		return nil, err
	}
	return &Cache{Cache: cache}, nil
}

type BigCache struct {
	cache *bigcache.BigCache
}

func NewBigCache(allKeysExpTime time.Duration) (*BigCache, error) {
	cache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(allKeysExpTime))
	if err != nil {
		return nil, err
	}
	return &BigCache{cache: cache}, nil
}

func (s *BigCache) Set(key string, entry []byte) (err error) {
	return s.cache.Set(key, entry)
}

func (s *BigCache) Get(key string) ([]byte, error) {
	return s.cache.Get(key)
}
