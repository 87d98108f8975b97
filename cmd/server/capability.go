package main

import (
	"context"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/internal/upscaler"
)

func upscalerCapability(ctx context.Context, cfg config.Capabilities, m *metrics.Metrics, log *logger.Logger) *upscaler.Capability {
	capability := upscaler.Bootstrap(ctx, cfg, log)
	m.SetModelLoaded(capability.Available())
	if !capability.Available() {
		m.ObserveCapabilityFailure(metrics.CapabilityUpscale)
	}

	return capability
}
