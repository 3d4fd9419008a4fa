// internal/db/redis.go
package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionPrefix = "session:"

// ErrSessionMissing is returned when a session key does not exist or has expired.
var ErrSessionMissing = errors.New("session not found")

type RedisDB struct {
	Client *redis.Client
	log    *zap.Logger
}

func NewRedisDB(ctx context.Context, redisURL string, log *zap.Logger) (*RedisDB, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis URL")
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "connect to redis")
	}

	log.Info("connected to redis", zap.String("addr", opt.Addr))
	return &RedisDB{Client: client, log: log}, nil
}

func (r *RedisDB) Close() {
	if r.Client != nil {
		r.Client.Close()
		r.log.Info("redis connection closed")
	}
}

// Session management
func (r *RedisDB) SetSession(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	return r.Client.Set(ctx, sessionPrefix+key, data, expiration).Err()
}

func (r *RedisDB) GetSession(ctx context.Context, key string, dest any) error {
	data, err := r.Client.Get(ctx, sessionPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrSessionMissing
	}
	if err != nil {
		return errors.Wrap(err, "get session")
	}
	return json.Unmarshal(data, dest)
}

func (r *RedisDB) DeleteSession(ctx context.Context, key string) error {
	return r.Client.Del(ctx, sessionPrefix+key).Err()
}
