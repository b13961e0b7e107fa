package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisScanBatch = 100

type redisTransientRepository struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisTransientRepository(client *redis.Client, log *zap.Logger) TransientRepository {
	return &redisTransientRepository{
		client: client,
		log:    log.With(zap.String("repository", "transient_redis")),
	}
}

func (r *redisTransientRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to get transient",
			zap.Error(err),
			zap.String("key", key),
		)
		return "", false, fmt.Errorf("get transient %s: %w", key, err)
	}

	return value, true, nil
}

func (r *redisTransientRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.log.Error("Failed to set transient",
			zap.Error(err),
			zap.String("key", key),
			zap.Duration("ttl", ttl),
		)
		return fmt.Errorf("set transient %s: %w", key, err)
	}

	return nil
}

func (r *redisTransientRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.log.Error("Failed to delete transient",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("delete transient %s: %w", key, err)
	}

	return nil
}

func (r *redisTransientRepository) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var (
		cursor uint64
		total  int64
	)

	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", redisScanBatch).Result()
		if err != nil {
			r.log.Error("Failed to scan transients",
				zap.Error(err),
				zap.String("prefix", prefix),
			)
			return total, fmt.Errorf("scan transients with prefix %s: %w", prefix, err)
		}

		if len(keys) > 0 {
			deleted, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return total, fmt.Errorf("delete transients with prefix %s: %w", prefix, err)
			}
			total += deleted
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	r.log.Info("Transients deleted",
		zap.String("prefix", prefix),
		zap.Int64("count", total),
	)
	return total, nil
}
