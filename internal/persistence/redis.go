package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-roster/internal/config"
)

// ErrRedisUnavailable is returned when no client has been configured.
var ErrRedisUnavailable = errors.New("redis client not configured")

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return ErrRedisUnavailable
	}
	return r.Client.Ping(ctx).Err()
}

// Allow counts a hit against key in a fixed window and reports whether the
// hit is within limit.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r == nil || r.Client == nil {
		return false, ErrRedisUnavailable
	}

	hits, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	// The first hit opens the window. Plain EXPIRE keeps this working on Redis 6.
	if hits == 1 {
		if err := r.Client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return hits <= int64(limit), nil
}

// Publish sends payload on a pub/sub channel.
func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) error {
	if r == nil || r.Client == nil {
		return ErrRedisUnavailable
	}
	return r.Client.Publish(ctx, channel, payload).Err()
}
