package cache

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func stubRedis(t *testing.T, fn func(*redis.Options) Cache) {
	orig := redisNewClient
	redisNewClient = fn
	t.Cleanup(func() { redisNewClient = orig })
}

func TestNewRedisClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var opts *redis.Options
		fake := &FakeCache{PingFn: func(context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }}
		stubRedis(t, func(o *redis.Options) Cache {
			opts = o
			return fake
		})

		c, err := NewRedisClient(context.Background(), "127.0.0.1:6379", "secret", 1)
		require.NoError(t, err)
		require.Equal(t, fake, c)
		require.Equal(t, "127.0.0.1:6379", opts.Addr)
		require.Equal(t, "secret", opts.Password)
		require.Equal(t, 1, opts.DB)
	})

	t.Run("ping fail closes client", func(t *testing.T) {
		closed := false
		stubRedis(t, func(o *redis.Options) Cache {
			return &FakeCache{
				PingFn:  func(context.Context) *redis.StatusCmd { return redis.NewStatusResult("", errors.New("fail")) },
				CloseFn: func() error { closed = true; return nil },
			}
		})

		c, err := NewRedisClient(context.Background(), "addr", "", 0)
		require.Error(t, err)
		require.Nil(t, c)
		require.True(t, closed)
	})

	t.Run("miniredis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		require.NoError(t, c.Set(context.Background(), "k", "v", 0).Err())
		got, err := mr.Get("k")
		require.NoError(t, err)
		require.Equal(t, "v", got)
	})
}
