package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/internal/service"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// limiter is nil when per-client-IP rate limiting is disabled.
	limiter  *ipRateLimiter
	traceIDs *utils.UUIDGenerator

	quota  config.Quota
	server config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	h := &Handler{
		services: services,
		metrics:  m,
		traceIDs: utils.NewUUIDGenerator(),
		quota:    cfg.Quota,
		server:   cfg.Server,
		logger:   logger,
	}
	if cfg.Server.RateLimitRPS > 0 {
		h.limiter = newIPRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	return h
}

// RateLimitEnabled reports whether the per-client-IP limiter is active.
func (h *Handler) RateLimitEnabled() bool {
	return h.limiter != nil
}

// EvictIdleClients drops limiter state of clients idle for longer than the
// eviction window. It is run periodically by a background worker.
func (h *Handler) EvictIdleClients(_ context.Context) error {
	if h.limiter != nil {
		h.limiter.evictIdle(time.Now())
	}

	return nil
}
