package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Connect pings addr and returns nil when Redis is unreachable; every helper
// in this package treats a nil client as "no Redis" and degrades to a no-op.
func Connect(ctx context.Context, addr string, logger *logrus.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis not available, running without cache and submission locks")
		_ = client.Close()
		return nil
	}

	logger.WithField("addr", addr).Info("redis connected")
	return client
}
