package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-image-gateway/models"
)

// memoryQuotaRepository keeps the ledger in process memory. A single mutex
// makes every charge atomic; records are lost on restart.
type memoryQuotaRepository struct {
	mu      sync.Mutex
	records map[models.QuotaKey]models.QuotaRecord
}

// NewMemoryQuotaRepository returns an empty in-memory [QuotaRepository].
func NewMemoryQuotaRepository() QuotaRepository {
	return &memoryQuotaRepository{
		records: make(map[models.QuotaKey]models.QuotaRecord),
	}
}

func (m *memoryQuotaRepository) ChargeIfAllowed(ctx context.Context, key models.QuotaKey, ceiling int64, now time.Time) (models.ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ChargeResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[key]
	if !ok {
		record = models.QuotaRecord{UserID: key.UserID, Day: key.Day, Bucket: key.Bucket}
	}

	if record.Count >= ceiling {
		return models.ChargeResult{Allowed: false, Count: record.Count, Ceiling: ceiling, Day: key.Day}, nil
	}

	record.Count++
	record.LastUpdated = now.UTC()
	m.records[key] = record

	return models.ChargeResult{Allowed: true, Count: record.Count, Ceiling: ceiling, Day: key.Day}, nil
}

func (m *memoryQuotaRepository) GetCount(ctx context.Context, key models.QuotaKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.records[key].Count, nil
}
