package pipeline

import (
	"context"
	"lexdraft/redis"
	"sync"
)

// Guard admits one in-flight submission per key. redis.Locker satisfies it
// across instances; LocalGuard is the single-process fallback.
type Guard interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

type LocalGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{inFlight: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(ctx context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.inFlight[key]; held {
		return nil, redis.ErrLocked
	}
	g.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, nil
}

func guardKey(actorID, templateID string) string {
	return "submit:" + actorID + ":" + templateID
}
