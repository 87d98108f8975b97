// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/models"
)

// quotaRepository is the SQL implementation of [QuotaRepository] shared by the
// PostgreSQL and SQLite backends. Dialect differences (placeholders, isolation
// level, row locking, error codes) live in [DB].
type quotaRepository struct {
	*DB
	logger *logger.Logger
}

// NewQuotaRepository constructs a [QuotaRepository] backed by the provided
// database connection and logger.
func NewQuotaRepository(db *DB, logger *logger.Logger) QuotaRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating quota repository")
	return &quotaRepository{
		DB:     db,
		logger: logger,
	}
}

// ChargeIfAllowed reads the counter, compares it with ceiling and persists
// count+1 inside a single transaction.
//
// The transaction is rolled back automatically (via defer) on every path that
// does not reach the commit, including the denied path which performs no
// writes at all.
func (r *quotaRepository) ChargeIfAllowed(ctx context.Context, key models.QuotaKey, ceiling int64, now time.Time) (models.ChargeResult, error) {
	log := logger.FromContext(ctx)

	selectQuery, selectArgs, err := buildSelectCountQuery(r.placeholder, key, r.lockRows)
	if err != nil {
		log.Err(err).Str("func", "quotaRepository.ChargeIfAllowed").Msg("failed to create select query")
		return models.ChargeResult{}, err
	}

	tx, err := r.DB.BeginTx(ctx, r.txOptions)
	if err != nil {
		log.Err(err).
			Str("func", "quotaRepository.ChargeIfAllowed").
			Str("user_id", key.UserID).
			Msg("failed to begin transaction")
		return models.ChargeResult{}, r.conflictOr(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&current)
	switch {
	case err == nil:
	case isNoRows(err):
		// first charge of the day
		current = 0
	default:
		log.Err(err).
			Str("func", "quotaRepository.ChargeIfAllowed").
			Str("user_id", key.UserID).
			Str("day", key.Day).
			Msg("failed to read counter")
		return models.ChargeResult{}, r.conflictOr(ErrExecutingQuery, err)
	}

	if current >= ceiling {
		log.Debug().
			Str("func", "quotaRepository.ChargeIfAllowed").
			Str("user_id", key.UserID).
			Str("day", key.Day).
			Int64("count", current).
			Msg("ceiling reached, nothing written")
		return models.ChargeResult{Allowed: false, Count: current, Ceiling: ceiling, Day: key.Day}, nil
	}

	next := current + 1
	upsertQuery, upsertArgs, err := buildUpsertCountQuery(r.placeholder, key, next, now)
	if err != nil {
		log.Err(err).Str("func", "quotaRepository.ChargeIfAllowed").Msg("failed to create upsert query")
		return models.ChargeResult{}, err
	}

	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).
			Str("func", "quotaRepository.ChargeIfAllowed").
			Str("user_id", key.UserID).
			Str("day", key.Day).
			Msg("failed to persist counter")
		return models.ChargeResult{}, r.conflictOr(ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "quotaRepository.ChargeIfAllowed").
			Str("user_id", key.UserID).
			Msg("failed to commit transaction")
		return models.ChargeResult{}, r.conflictOr(ErrCommitingTransaction, commitErr)
	}

	return models.ChargeResult{Allowed: true, Count: next, Ceiling: ceiling, Day: key.Day}, nil
}

// GetCount returns the stored counter for key, or zero when no record exists.
func (r *quotaRepository) GetCount(ctx context.Context, key models.QuotaKey) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCountQuery(r.placeholder, key, false)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count)
	if isNoRows(err) {
		return 0, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "quotaRepository.GetCount").
			Str("user_id", key.UserID).
			Str("day", key.Day).
			Msg("failed to read counter")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}
