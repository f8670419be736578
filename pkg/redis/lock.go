package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrLockNotAcquired is returned when every attempt found the lock held by someone else.
	ErrLockNotAcquired = errors.New("redis: lock not acquired")
	// ErrLockNotHeld is returned by Unlock when the key expired or belongs to another holder.
	ErrLockNotHeld = errors.New("redis: lock not held")
)

const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// LockOptions configures acquisition of a distributed lock.
type LockOptions struct {
	TTL        time.Duration
	RetryDelay time.Duration
	MaxRetries int
	// LockNamespace prefixes the key as LockNamespace::key.
	LockNamespace string
}

func DefaultLockOptions() *LockOptions {
	return &LockOptions{
		TTL:        30 * time.Second,
		RetryDelay: 100 * time.Millisecond,
		MaxRetries: 50,
	}
}

func (lo *LockOptions) WithTTL(ttl time.Duration) *LockOptions {
	lo.TTL = ttl
	return lo
}

func (lo *LockOptions) WithRetryDelay(delay time.Duration) *LockOptions {
	lo.RetryDelay = delay
	return lo
}

func (lo *LockOptions) WithMaxRetries(maxRetries int) *LockOptions {
	lo.MaxRetries = maxRetries
	return lo
}

func (lo *LockOptions) WithLockNamespace(namespace string) *LockOptions {
	lo.LockNamespace = namespace
	return lo
}

// Lock is a single-holder lock backed by SET NX with a random token.
type Lock struct {
	client *Client
	key    string
	value  string
	opts   *LockOptions
}

func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = DefaultLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.NewString(),
		opts:   opts,
	}
}

// Key returns the namespaced Redis key.
func (l *Lock) Key() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// Lock retries SET NX until it succeeds, the retries run out or ctx is done.
func (l *Lock) Lock(ctx context.Context) error {
	fullKey := l.Key()
	for attempt := 0; ; attempt++ {
		acquired, err := l.client.GetClient().SetNX(ctx, fullKey, l.value, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
		}
		if acquired {
			return nil
		}
		if attempt >= l.opts.MaxRetries {
			return fmt.Errorf("%w: %s after %d attempts", ErrLockNotAcquired, fullKey, attempt+1)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}
}

// Unlock deletes the key only if it still holds this lock's token.
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := l.client.GetClient().Eval(ctx, unlockScript, []string{l.Key()}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// LockWithFunc runs fn while holding the lock on key. An unlock failure is reported
// only when fn itself succeeded.
func LockWithFunc(ctx context.Context, client *Client, key string, opts *LockOptions, fn func() error) (err error) {
	lock := NewLock(client, key, opts)
	if err := lock.Lock(ctx); err != nil {
		return err
	}

	defer func() {
		// release even if the caller's context was cancelled while fn ran
		unlockErr := lock.Unlock(context.WithoutCancel(ctx))
		if err == nil && unlockErr != nil {
			err = unlockErr
		}
	}()

	return fn()
}
