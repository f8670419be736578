package redis

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewClient(DefaultConfig().WithHost(mr.Host()).WithPort(port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(DefaultConfig().WithPort(0))
	assert.Error(t, err)

	_, err = NewClient(DefaultConfig().WithDatabase(16))
	assert.Error(t, err)
}

func TestCacheRoundTripWithPrefix(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	cache := NewCache(client, DefaultCacheOptions().WithCacheName("board-tree").WithTTL(time.Minute))

	type payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, cache.Set(ctx, "u1:b1", payload{Name: "Sprint1"}))

	assert.True(t, mr.Exists("board-tree::u1:b1"))
	assert.Equal(t, time.Minute, mr.TTL("board-tree::u1:b1"))

	var got payload
	require.NoError(t, cache.Get(ctx, "u1:b1", &got))
	assert.Equal(t, "Sprint1", got.Name)

	require.NoError(t, cache.Delete(ctx, "u1:b1"))
	err := cache.Get(ctx, "u1:b1", &got)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCacheTTLFromClientConfig(t *testing.T) {
	client, mr := newTestClient(t)
	client.GetConfig().WithCacheTTL("board-tree", 42*time.Second)
	cache := NewCache(client, DefaultCacheOptions().WithCacheName("board-tree"))

	require.NoError(t, cache.Set(context.Background(), "k", "v"))

	assert.Equal(t, 42*time.Second, mr.TTL("board-tree::k"))
}

func TestLockIsExclusive(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	opts := DefaultLockOptions().WithLockNamespace("board-structure").WithMaxRetries(0)

	first := NewLock(client, "b1", opts)
	require.NoError(t, first.Lock(ctx))

	second := NewLock(client, "b1", opts)
	err := second.Lock(ctx)
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	assert.ErrorIs(t, second.Unlock(ctx), ErrLockNotHeld)
	require.NoError(t, first.Unlock(ctx))
	require.NoError(t, second.Lock(ctx))
	assert.Equal(t, "board-structure::b1", second.Key())
}

func TestLockWithFuncSerializesCallers(t *testing.T) {
	client, _ := newTestClient(t)
	opts := DefaultLockOptions().WithRetryDelay(5 * time.Millisecond).WithMaxRetries(400)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := LockWithFunc(context.Background(), client, "b1", opts, func() error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLockWithFuncReturnsFnError(t *testing.T) {
	client, mr := newTestClient(t)
	boom := errors.New("boom")

	err := LockWithFunc(context.Background(), client, "b1", nil, func() error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("b1"))
}

func TestHealthCheck(t *testing.T) {
	client, mr := newTestClient(t)

	assert.Equal(t, StatusUp, client.HealthCheck(context.Background()).Status)

	mr.Close()
	down := client.HealthCheck(context.Background())
	assert.Equal(t, StatusDown, down.Status)
	assert.NotEmpty(t, down.Details["message"])
}

func TestCacheSetIfVersionRejectsFillAfterInvalidate(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	cache := NewCache(client, DefaultCacheOptions().WithCacheName("board-tree").WithTTL(time.Minute))

	version, err := cache.Version(ctx, "u1:b1")
	require.NoError(t, err)
	assert.Zero(t, version)

	stored, err := cache.SetIfVersion(ctx, "u1:b1", "first", version)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, time.Minute, mr.TTL("board-tree::u1:b1"))

	stale, err := cache.Version(ctx, "u1:b1")
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "u1:b1"))
	assert.False(t, mr.Exists("board-tree::u1:b1"))

	stored, err = cache.SetIfVersion(ctx, "u1:b1", "stale", stale)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("board-tree::u1:b1"))

	current, err := cache.Version(ctx, "u1:b1")
	require.NoError(t, err)
	assert.Equal(t, stale+1, current)

	stored, err = cache.SetIfVersion(ctx, "u1:b1", "fresh", current)
	require.NoError(t, err)
	assert.True(t, stored)

	var got string
	require.NoError(t, cache.Get(ctx, "u1:b1", &got))
	assert.Equal(t, "fresh", got)
}
