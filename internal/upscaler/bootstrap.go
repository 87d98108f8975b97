package upscaler

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

// Bootstrap builds the configured engine. The remote engine serves the
// super-resolution model, so its artifact is ensured first; the resample
// engine works without it and no download happens.
// It never fails the process: any error yields an unavailable capability
// carrying the reason, and the upscale endpoint answers 503 from then on.
func Bootstrap(ctx context.Context, cfg config.Capabilities, log *logger.Logger) *Capability {
	ctx = log.WithContext(ctx)

	if cfg.UpscalerEngine == config.UpscalerEngineResample {
		log.Warn().
			Str("func", "upscaler.Bootstrap").
			Str("model", cfg.ModelName).
			Msg("resample engine does not use the super-resolution model, upscaling is a Catmull-Rom resize")
	} else {
		downloader := utils.NewHTTPClient()
		if cfg.UpscalerTimeout > 0 {
			downloader.SetTimeout(cfg.UpscalerTimeout)
		}

		if err := EnsureArtifact(ctx, downloader, cfg.ModelURL, cfg.ModelPath, cfg.ModelSHA256); err != nil {
			log.Err(err).Str("func", "upscaler.Bootstrap").Str("path", cfg.ModelPath).Msg("model artifact is not available")
			return NewUnavailable(err)
		}
	}

	engine, err := newEngine(cfg)
	if err != nil {
		log.Err(err).Str("func", "upscaler.Bootstrap").Msg("error creating upscaler engine")
		return NewUnavailable(err)
	}

	log.Info().
		Str("func", "upscaler.Bootstrap").
		Str("engine", engine.Name()).
		Str("model", cfg.ModelName).
		Msg("upscaler capability loaded")

	return NewAvailable(engine)
}

func newEngine(cfg config.Capabilities) (Engine, error) {
	switch cfg.UpscalerEngine {
	case config.UpscalerEngineResample:
		return NewResampleEngine(), nil
	case config.UpscalerEngineRemote:
		client, err := utils.NewServiceClient(cfg.UpscalerURL, cfg.UpscalerTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid upscaler url: %w", err)
		}
		return NewRemoteEngine(client, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unknown upscaler engine %q", cfg.UpscalerEngine)
	}
}
