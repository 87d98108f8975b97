package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/internal/store"
	"github.com/MKhiriev/go-image-gateway/models"
)

// quotaService is the concrete implementation of QuotaService.
// Each charge is one repository transaction attempt; attempts that lose a
// race against a concurrent writer are re-run with exponential backoff.
type quotaService struct {
	repository store.QuotaRepository

	maxRetries     uint64
	retryBaseDelay time.Duration

	// now is the clock used to derive the UTC day key.
	now func() time.Time

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewQuotaService constructs a QuotaService over repository with the retry
// policy from cfg.
func NewQuotaService(repository store.QuotaRepository, cfg config.Quota, m *metrics.Metrics, logger *logger.Logger) QuotaService {
	return &quotaService{
		repository:     repository,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		now:            time.Now,
		metrics:        m,
		logger:         logger,
	}
}

// ChargeIfAllowed charges one unit of bucket for userID on the current UTC day.
//
// Returns an allowed result with the new count, a denied result with the
// unchanged count, or ErrStoreUnavailable when the store failed or the
// conflict retries were exhausted. A denial is not an error.
func (q *quotaService) ChargeIfAllowed(ctx context.Context, userID, bucket string, ceiling int64) (models.ChargeResult, error) {
	log := logger.FromContext(ctx)

	now := q.now().UTC()
	key := models.NewQuotaKey(userID, bucket, now)

	var result models.ChargeResult
	attempt := 0
	err := retry.Do(ctx, q.backoff(), func(ctx context.Context) error {
		attempt++
		res, err := q.repository.ChargeIfAllowed(ctx, key, ceiling, now)
		if errors.Is(err, store.ErrTransactionConflict) {
			q.metrics.ObserveConflict(bucket)
			log.Debug().
				Str("func", "quotaService.ChargeIfAllowed").
				Str("user_id", userID).
				Int("attempt", attempt).
				Msg("ledger transaction conflict, retrying")
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		q.metrics.ObserveCharge(bucket, metrics.OutcomeFailed)
		log.Err(err).
			Str("func", "quotaService.ChargeIfAllowed").
			Str("user_id", userID).
			Str("day", key.Day).
			Int("attempts", attempt).
			Msg("charge failed")
		return models.ChargeResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if !result.Allowed {
		q.metrics.ObserveCharge(bucket, metrics.OutcomeDenied)
		log.Info().
			Str("func", "quotaService.ChargeIfAllowed").
			Str("user_id", userID).
			Str("bucket", bucket).
			Int64("count", result.Count).
			Int64("ceiling", ceiling).
			Msg("daily limit hit")
		return result, nil
	}

	q.metrics.ObserveCharge(bucket, metrics.OutcomeAllowed)
	return result, nil
}

// Usage reads today's counter of bucket for userID.
func (q *quotaService) Usage(ctx context.Context, userID, bucket string, ceiling int64) (models.Usage, error) {
	now := q.now().UTC()
	key := models.NewQuotaKey(userID, bucket, now)

	count, err := q.repository.GetCount(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "quotaService.Usage").
			Str("user_id", userID).
			Msg("error reading usage")
		return models.Usage{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return models.Usage{
		Day:          key.Day,
		Bucket:       bucket,
		Used:         count,
		Limit:        ceiling,
		Remaining:    max(ceiling-count, 0),
		LimitReached: count >= ceiling,
		ResetsAt:     models.NextMidnightUTC(now),
	}, nil
}

func (q *quotaService) backoff() retry.Backoff {
	b := retry.NewExponential(q.retryBaseDelay)
	b = retry.WithJitterPercent(20, b)
	return retry.WithMaxRetries(q.maxRetries, b)
}
