package contracts

import (
	"context"
	"time"
)

// KeyValueRepository is the session store. Values are JSON encoded and Get
// returns "" with a nil error for a missing key.
type KeyValueRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}
