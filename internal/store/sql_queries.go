package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-image-gateway/models"
)

const (
	dailyStatsTable = "daily_stats"

	upsertDailyStatsSuffix = `ON CONFLICT (user_id, day, bucket) DO UPDATE SET
		count = excluded.count,
		last_updated = excluded.last_updated`
)

// buildSelectCountQuery returns the query reading the counter of key. With
// lock set the row is locked until the end of the transaction.
func buildSelectCountQuery(format sq.PlaceholderFormat, key models.QuotaKey, lock bool) (string, []any, error) {
	builder := sq.Select("count").
		From(dailyStatsTable).
		Where(sq.Eq{"user_id": key.UserID}).
		Where(sq.Eq{"day": key.Day}).
		Where(sq.Eq{"bucket": key.Bucket}).
		PlaceholderFormat(format)

	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpsertCountQuery returns the statement persisting count for key,
// inserting the record on the first charge of the day.
func buildUpsertCountQuery(format sq.PlaceholderFormat, key models.QuotaKey, count int64, now time.Time) (string, []any, error) {
	query, args, err := sq.Insert(dailyStatsTable).
		Columns("user_id", "day", "bucket", "count", "last_updated").
		Values(key.UserID, key.Day, key.Bucket, count, now.UTC()).
		Suffix(upsertDailyStatsSuffix).
		PlaceholderFormat(format).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
