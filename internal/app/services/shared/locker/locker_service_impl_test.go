package locker

import (
	"context"
	"labreport-service/internal/app/services/shared/cache"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("Second Caller Is Refused Until Unlock", func(t *testing.T) {
		service := newLockService(cache.NewCacheRepository(time.Minute, time.Minute), zap.NewNop())

		acquired, lockValue, err := service.TryLock(ctx, "labreport:lock:M1", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)
		assert.NotEmpty(t, lockValue)

		acquired, other, err := service.TryLock(ctx, "labreport:lock:M1", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, other)

		require.NoError(t, service.Unlock(ctx, "labreport:lock:M1", lockValue))

		acquired, _, err = service.TryLock(ctx, "labreport:lock:M1", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("Unlock With Foreign Value Fails", func(t *testing.T) {
		service := newLockService(cache.NewCacheRepository(time.Minute, time.Minute), zap.NewNop())

		acquired, _, err := service.TryLock(ctx, "labreport:lock:M2", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		assert.Error(t, service.Unlock(ctx, "labreport:lock:M2", "someone-else"))
	})

	t.Run("Unlock Without Lock Is A No-Op", func(t *testing.T) {
		service := newLockService(cache.NewCacheRepository(time.Minute, time.Minute), zap.NewNop())
		assert.NoError(t, service.Unlock(ctx, "labreport:lock:none", "value"))
	})
}
