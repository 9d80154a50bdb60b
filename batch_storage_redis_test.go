//go:build integration

package main

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisTestClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	addr, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(addr)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBatchStorage(t *testing.T) {
	client := newRedisTestClient(t)
	testBatchStorage(t, NewRedisBatchStorage(client, "test", time.Minute))
}

func TestRedisBatchStorage_SetsTTL(t *testing.T) {
	client := newRedisTestClient(t)
	storage := NewRedisBatchStorage(client, "test", time.Minute)

	require.NoError(t, storage.StoreBatch("ttl", testRecords(1)))

	ttl, err := client.TTL(context.Background(), createKey("test", "ttl")).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisBatchStorage_NamespacesAreIsolated(t *testing.T) {
	client := newRedisTestClient(t)
	a := NewRedisBatchStorage(client, "a", 0)
	b := NewRedisBatchStorage(client, "b", 0)

	require.NoError(t, a.StoreBatch("shared", testRecords(1)))
	_, err := b.RetrieveBatch("shared")
	require.ErrorIs(t, err, ErrBatchNotFound)
}
