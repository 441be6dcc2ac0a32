package sessionstore

import (
	"context"
	"errors"
	"fmt"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/session"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis keeps every session in a hash, the whole hash expires after ttl of inactivity.
type Redis struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedis(redisClient *redis.Client, ttl time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, id session.ID, key string) (string, error) {
	if id.IsZero() {
		return "", session.ErrInvalidSessionID
	}
	value, err := r.redisClient.HGet(ctx, sessionKey(id), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, id session.ID, key string, value string) error {
	if id.IsZero() {
		return session.ErrInvalidSessionID
	}
	k := sessionKey(id)
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, key, value)
		pipe.Expire(ctx, k, r.ttl)
		return nil
	})
	return err
}

func sessionKey(id session.ID) string {
	return fmt.Sprintf("session::%s", id)
}
