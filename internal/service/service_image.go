package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-image-gateway/internal/adapter"
	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/imaging"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/models"
)

// imageService charges the caller and runs a processing capability.
//
// Background removal charges before delegating, so a failing remover still
// consumes quota. Upscaling checks the capability first and is never charged
// while the model is unavailable.
type imageService struct {
	quota    QuotaService
	remover  adapter.BackgroundRemover
	upscaler Upscaler

	bucket  string
	ceiling int64

	// maxSide is the size guard: larger images are returned untouched.
	maxSide int

	now func() time.Time

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewImageService constructs an ImageService charging cfg.Quota.Bucket.
func NewImageService(
	quota QuotaService,
	remover adapter.BackgroundRemover,
	upscaler Upscaler,
	cfg config.StructuredConfig,
	m *metrics.Metrics,
	logger *logger.Logger,
) ImageService {
	return &imageService{
		quota:    quota,
		remover:  remover,
		upscaler: upscaler,
		bucket:   cfg.Quota.Bucket,
		ceiling:  cfg.Quota.Ceiling,
		maxSide:  cfg.Capabilities.UpscaleMaxSide,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
}

// RemoveBackground charges principal and returns the PNG produced by the
// background remover.
func (s *imageService) RemoveBackground(ctx context.Context, principal models.Principal, file []byte) ([]byte, error) {
	log := logger.FromContext(ctx)

	if err := s.charge(ctx, principal); err != nil {
		return nil, err
	}

	out, err := s.remover.RemoveBackground(ctx, file)
	if err != nil {
		s.metrics.ObserveCapabilityFailure(metrics.CapabilityRemoveBackground)
		log.Err(err).
			Str("func", "imageService.RemoveBackground").
			Str("user_id", principal.UserID).
			Msg("background removal failed")
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	return out, nil
}

// Upscale charges principal and returns the image upsampled by the
// capability, encoded as PNG. Images with a side above the size guard are
// returned as the original bytes without invoking the capability.
func (s *imageService) Upscale(ctx context.Context, principal models.Principal, file []byte) ([]byte, error) {
	log := logger.FromContext(ctx)

	if !s.upscaler.Available() {
		return nil, ErrModelUnavailable
	}

	if err := s.charge(ctx, principal); err != nil {
		return nil, err
	}

	out, err := s.upscale(ctx, file)
	if err != nil {
		s.metrics.ObserveCapabilityFailure(metrics.CapabilityUpscale)
		log.Err(err).
			Str("func", "imageService.Upscale").
			Str("user_id", principal.UserID).
			Msg("upscale failed")
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	return out, nil
}

func (s *imageService) UpscalerState() models.CapabilityState {
	return s.upscaler.State()
}

func (s *imageService) upscale(ctx context.Context, file []byte) ([]byte, error) {
	img, _, err := imaging.Decode(file)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxSide || bounds.Dy() > s.maxSide {
		s.metrics.ObserveUpscaleSkipped()
		logger.FromContext(ctx).Info().
			Str("func", "imageService.upscale").
			Int("width", bounds.Dx()).
			Int("height", bounds.Dy()).
			Msg("image exceeds size guard, returning original")
		return file, nil
	}

	upscaled, err := s.upscaler.Upsample(ctx, img)
	if err != nil {
		return nil, err
	}

	return imaging.EncodePNG(upscaled)
}

func (s *imageService) charge(ctx context.Context, principal models.Principal) error {
	result, err := s.quota.ChargeIfAllowed(ctx, principal.UserID, s.bucket, s.ceiling)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return &QuotaExceededError{
			Ceiling:  s.ceiling,
			Count:    result.Count,
			ResetsAt: s.resetsAt(result.Day),
		}
	}

	return nil
}

// resetsAt is the midnight that ends the ledger day the charge was evaluated
// on. The service clock is only used when the store did not report a day.
func (s *imageService) resetsAt(day string) time.Time {
	if resets, err := models.NextMidnightOfDay(day); err == nil {
		return resets
	}

	return models.NextMidnightUTC(s.now())
}
