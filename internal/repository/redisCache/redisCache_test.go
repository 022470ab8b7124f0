package redisCache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := &Cache{
		client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		ttl:    time.Minute,
	}
	t.Cleanup(func() { _ = cache.Close() })
	return mr, cache
}

func TestSetGetIdentity(t *testing.T) {
	_, cache := newTestCache(t)

	want := domain.Identity{UserID: "005xx0001", DisplayName: "Sunny"}
	require.NoError(t, cache.SetIdentity(context.Background(), "key-1", want))

	got, err := cache.GetIdentity(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetIdentity_MissIsRecordNotFound(t *testing.T) {
	_, cache := newTestCache(t)

	_, err := cache.GetIdentity(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestIdentityExpires(t *testing.T) {
	mr, cache := newTestCache(t)

	require.NoError(t, cache.SetIdentity(context.Background(), "key-1", domain.Identity{UserID: "005"}))
	mr.FastForward(2 * time.Minute)

	_, err := cache.GetIdentity(context.Background(), "key-1")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
