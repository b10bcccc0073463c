package cache

import (
	"context"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
)

// cacheRepository is the in-process session store used when no Redis is
// configured. Values are stored JSON encoded so both backends behave alike.
type cacheRepository struct {
	cache *gocache.Cache
}

func NewCacheRepository(defaultExpiration, cleanupInterval time.Duration) contracts.KeyValueRepository {
	return &cacheRepository{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	r.cache.Set(key, string(jsonValue), cacheExpiration(exp))
	return nil
}

func (r *cacheRepository) Get(ctx context.Context, key string) (string, error) {
	value, found := r.cache.Get(key)
	if !found {
		return "", nil
	}
	return value.(string), nil
}

func (r *cacheRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	err = r.cache.Add(key, string(jsonValue), cacheExpiration(exp))
	return err == nil, nil
}

// A zero expiration means "keep forever", matching Redis.
func cacheExpiration(exp time.Duration) time.Duration {
	if exp <= 0 {
		return gocache.NoExpiration
	}
	return exp
}
