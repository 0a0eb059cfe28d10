package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another holder owns the key
var ErrLocked = errors.New("lock already held")

// Locker hands out short-lived exclusive keys, e.g. one in-flight document
// submission per user and template.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
}

func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: redislock.New(client), ttl: ttl}
}

// Acquire obtains key without retrying. The returned release func is safe to
// call after the lock already expired.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	lock, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLocked
	}
	if err != nil {
		return nil, err
	}

	return func() {
		// the request context may be gone by now
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = lock.Release(releaseCtx)
	}, nil
}
