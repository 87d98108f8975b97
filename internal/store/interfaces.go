package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-image-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// QuotaRepository is the transactional ledger of per-user daily counters.
type QuotaRepository interface {
	// ChargeIfAllowed runs one read-compare-increment attempt for key.
	// A missing record counts as zero and is created inside the same
	// transaction. When the stored count has reached ceiling nothing is
	// written and a denied result carrying the current count is returned.
	// A lost race against a concurrent writer yields [ErrTransactionConflict].
	ChargeIfAllowed(ctx context.Context, key models.QuotaKey, ceiling int64, now time.Time) (models.ChargeResult, error)

	// GetCount returns the current count for key, zero when absent.
	GetCount(ctx context.Context, key models.QuotaKey) (int64, error)
}

// ErrorClassificator decides whether a driver error is a transaction conflict.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
