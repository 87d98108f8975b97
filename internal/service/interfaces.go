package service

import (
	"context"
	"image"

	"github.com/MKhiriev/go-image-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService turns a bearer credential into an authenticated principal.
type AuthService interface {
	Verify(ctx context.Context, credential string) (models.Principal, error)
}

// QuotaService charges and reports the per-user daily counters.
type QuotaService interface {
	// ChargeIfAllowed atomically increments the counter of userID in bucket
	// for the current UTC day unless it already reached ceiling.
	ChargeIfAllowed(ctx context.Context, userID, bucket string, ceiling int64) (models.ChargeResult, error)

	// Usage reports today's counter without charging.
	Usage(ctx context.Context, userID, bucket string, ceiling int64) (models.Usage, error)
}

// ImageService runs the charged processing capabilities.
type ImageService interface {
	RemoveBackground(ctx context.Context, principal models.Principal, file []byte) ([]byte, error)
	Upscale(ctx context.Context, principal models.Principal, file []byte) ([]byte, error)
	UpscalerState() models.CapabilityState
}

// Upscaler is the super-resolution capability injected into the image service.
type Upscaler interface {
	State() models.CapabilityState
	Available() bool
	Upsample(ctx context.Context, img image.Image) (image.Image, error)
}
