package service

import (
	"github.com/MKhiriev/go-image-gateway/internal/adapter"
	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/internal/store"
)

type Services struct {
	AuthService  AuthService
	QuotaService QuotaService
	ImageService ImageService
}

// Adapters groups the external collaborators the services delegate to.
type Adapters struct {
	IdentityProvider  adapter.IdentityProvider
	BackgroundRemover adapter.BackgroundRemover
	Upscaler          Upscaler
}

func NewServices(storages *store.Storages, adapters Adapters, cfg config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) *Services {
	quotaService := NewQuotaService(storages.QuotaRepository, cfg.Quota, m, logger)

	return &Services{
		AuthService:  NewAuthService(adapters.IdentityProvider, logger),
		QuotaService: quotaService,
		ImageService: NewImageService(quotaService, adapters.BackgroundRemover, adapters.Upscaler, cfg, m, logger),
	}
}
