package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/redis"
)

const BoardLockNamespace = "board-structure"

// BoardLocker serializes structural changes (child creation and cascades) on one board.
type BoardLocker interface {
	WithBoardLock(ctx context.Context, boardID string, fn func() error) error
}

type RedisBoardLocker struct {
	client *redis.Client
	opts   *redis.LockOptions
}

var _ BoardLocker = (*RedisBoardLocker)(nil)

func NewRedisBoardLocker(client *redis.Client, ttl time.Duration) *RedisBoardLocker {
	opts := redis.DefaultLockOptions().WithLockNamespace(BoardLockNamespace)
	if ttl > 0 {
		opts = opts.WithTTL(ttl)
	}
	return &RedisBoardLocker{client: client, opts: opts}
}

// WithBoardLock runs fn while holding the board's lock. Contention that outlasts the retries
// surfaces as model.ErrConflict.
func (locker *RedisBoardLocker) WithBoardLock(ctx context.Context, boardID string, fn func() error) error {
	err := redis.LockWithFunc(ctx, locker.client, boardID, locker.opts, fn)
	if errors.Is(err, redis.ErrLockNotAcquired) {
		return model.Conflict(fmt.Sprintf("board %s is being modified", boardID))
	}
	return err
}

// NoopBoardLocker runs fn directly. Used when Redis is disabled.
type NoopBoardLocker struct{}

var _ BoardLocker = NoopBoardLocker{}

func (NoopBoardLocker) WithBoardLock(_ context.Context, _ string, fn func() error) error {
	return fn()
}
