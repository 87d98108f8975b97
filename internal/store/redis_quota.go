package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/models"
)

const lastUpdatedField = "last_updated"

// redisQuotaRepository stores each user day as a hash
// "users:{uid}:daily_stats:{day}" with one integer field per bucket and a
// last_updated field. Charges use an optimistic WATCH/MULTI transaction.
type redisQuotaRepository struct {
	client    *redis.Client
	keyPrefix string
	retention time.Duration
	logger    *logger.Logger
}

// NewConnectRedis creates a client for cfg and pings the server.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisQuotaRepository constructs a redis backed [QuotaRepository].
// A positive retention sets an expiry on every touched day hash.
func NewRedisQuotaRepository(client *redis.Client, keyPrefix string, retention time.Duration, logger *logger.Logger) QuotaRepository {
	return &redisQuotaRepository{
		client:    client,
		keyPrefix: keyPrefix,
		retention: retention,
		logger:    logger,
	}
}

func (r *redisQuotaRepository) dayKey(key models.QuotaKey) string {
	return r.keyPrefix + "users:" + key.UserID + ":daily_stats:" + key.Day
}

func (r *redisQuotaRepository) ChargeIfAllowed(ctx context.Context, key models.QuotaKey, ceiling int64, now time.Time) (models.ChargeResult, error) {
	log := logger.FromContext(ctx)
	hashKey := r.dayKey(key)

	var result models.ChargeResult
	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, hashKey, key.Bucket).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if current >= ceiling {
			result = models.ChargeResult{Allowed: false, Count: current, Ceiling: ceiling, Day: key.Day}
			return nil
		}

		next := current + 1
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, hashKey, key.Bucket, next, lastUpdatedField, now.UTC().Format(time.RFC3339Nano))
			if r.retention > 0 {
				pipe.Expire(ctx, hashKey, r.retention)
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = models.ChargeResult{Allowed: true, Count: next, Ceiling: ceiling, Day: key.Day}
		return nil
	}

	err := r.client.Watch(ctx, txf, hashKey)
	if errors.Is(err, redis.TxFailedErr) {
		return models.ChargeResult{}, fmt.Errorf("%w: %w", ErrTransactionConflict, err)
	}
	if err != nil {
		log.Err(err).
			Str("func", "redisQuotaRepository.ChargeIfAllowed").
			Str("user_id", key.UserID).
			Str("day", key.Day).
			Msg("redis transaction failed")
		return models.ChargeResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return result, nil
}

func (r *redisQuotaRepository) GetCount(ctx context.Context, key models.QuotaKey) (int64, error) {
	count, err := r.client.HGet(ctx, r.dayKey(key), key.Bucket).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
