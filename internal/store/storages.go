package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
)

// Storages bundles the repositories used by the service layer together with
// the connections that back them.
type Storages struct {
	QuotaRepository QuotaRepository

	closers []func() error
}

// NewStorages connects the ledger backend selected by cfg.LedgerBackend.
// Relational backends are migrated before use.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := &Storages{}

	switch cfg.LedgerBackend {
	case config.LedgerBackendPostgres, config.LedgerBackendSQLite:
		var db *DB
		var err error
		if cfg.LedgerBackend == config.LedgerBackendPostgres {
			db, err = NewConnectPostgres(ctx, cfg.DB, log)
		} else {
			db, err = NewConnectSQLite(ctx, cfg.DB, log)
		}
		if err != nil {
			return nil, err
		}
		storages.closers = append(storages.closers, db.Close)

		if err = db.Migrate(); err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error migrating ledger schema")
			return nil, errors.Join(err, storages.Close())
		}
		storages.QuotaRepository = NewQuotaRepository(db, log)

	case config.LedgerBackendRedis:
		client, err := NewConnectRedis(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		storages.closers = append(storages.closers, client.Close)
		storages.QuotaRepository = NewRedisQuotaRepository(client, cfg.Redis.KeyPrefix, cfg.Redis.Retention, log)

	case config.LedgerBackendMemory:
		log.Warn().Str("func", "NewStorages").Msg("using in-memory ledger, counters are lost on restart")
		storages.QuotaRepository = NewMemoryQuotaRepository()

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.LedgerBackend)
	}

	log.Info().Str("func", "NewStorages").Str("backend", cfg.LedgerBackend).Msg("ledger storage ready")
	return storages, nil
}

// Close releases every connection held by the storages.
func (s *Storages) Close() error {
	var err error
	for _, closeFn := range s.closers {
		err = errors.Join(err, closeFn())
	}
	s.closers = nil

	return err
}
