package lock

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/redis"
)

func newLocker(t *testing.T) (*RedisBoardLocker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	client, err := redis.NewClient(redis.DefaultConfig().WithHost(mr.Host()).WithPort(port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBoardLocker(client, 5*time.Second), mr
}

func TestWithBoardLockHoldsKeyDuringFn(t *testing.T) {
	locker, mr := newLocker(t)
	held := false

	err := locker.WithBoardLock(context.Background(), "b1", func() error {
		held = mr.Exists("board-structure::b1")
		return nil
	})

	require.NoError(t, err)
	assert.True(t, held)
	assert.False(t, mr.Exists("board-structure::b1"))
}

func TestWithBoardLockContentionIsConflict(t *testing.T) {
	locker, mr := newLocker(t)
	locker.opts = locker.opts.WithMaxRetries(1).WithRetryDelay(10 * time.Millisecond)
	require.NoError(t, mr.Set("board-structure::b1", "someone-else"))
	called := false

	err := locker.WithBoardLock(context.Background(), "b1", func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, model.ErrConflict)
	assert.False(t, called)
}

func TestWithBoardLockPropagatesFnError(t *testing.T) {
	locker, mr := newLocker(t)
	boom := errors.New("boom")

	err := locker.WithBoardLock(context.Background(), "b1", func() error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("board-structure::b1"))
}

func TestNoopBoardLocker(t *testing.T) {
	calls := 0
	err := NoopBoardLocker{}.WithBoardLock(context.Background(), "b1", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
