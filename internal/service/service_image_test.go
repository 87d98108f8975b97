package service

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/imaging"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/internal/mock"
	"github.com/MKhiriev/go-image-gateway/models"
)

var testPrincipal = models.Principal{UserID: "u1"}

type imageSvcMocks struct {
	quota    *mock.MockQuotaService
	remover  *mock.MockBackgroundRemover
	upscaler *mock.MockUpscaler
}

func newTestImageSvc(t *testing.T) (*imageService, imageSvcMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := imageSvcMocks{
		quota:    mock.NewMockQuotaService(ctrl),
		remover:  mock.NewMockBackgroundRemover(ctrl),
		upscaler: mock.NewMockUpscaler(ctrl),
	}

	cfg := config.StructuredConfig{
		Quota:        config.Quota{Bucket: "cheap_count", Ceiling: 50},
		Capabilities: config.Capabilities{UpscaleMaxSide: 1200},
	}
	svc := NewImageService(m.quota, m.remover, m.upscaler, cfg, metrics.New(), logger.Nop()).(*imageService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	return svc, m
}

func pngOfSize(t *testing.T, w, h int) []byte {
	t.Helper()

	data, err := imaging.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))
	require.NoError(t, err)

	return data
}

func allowed(count int64) models.ChargeResult {
	return models.ChargeResult{Allowed: true, Count: count, Ceiling: 50}
}

// ── RemoveBackground ─────────────────────────────────────────────────────────

func TestImageService_RemoveBackground_Success(t *testing.T) {
	svc, m := newTestImageSvc(t)
	input := []byte("jpeg bytes")
	output := []byte("png bytes")

	gomock.InOrder(
		m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), "u1", "cheap_count", int64(50)).Return(allowed(1), nil),
		m.remover.EXPECT().RemoveBackground(gomock.Any(), input).Return(output, nil),
	)

	got, err := svc.RemoveBackground(context.Background(), testPrincipal, input)
	require.NoError(t, err)
	assert.Equal(t, output, got)
}

func TestImageService_RemoveBackground_Denied(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.quota.EXPECT().
		ChargeIfAllowed(gomock.Any(), "u1", "cheap_count", int64(50)).
		Return(models.ChargeResult{Allowed: false, Count: 50, Ceiling: 50}, nil)

	_, err := svc.RemoveBackground(context.Background(), testPrincipal, []byte("img"))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	var exceeded *QuotaExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.Equal(t, "Daily limit reached (50/50). Resets at midnight UTC.", exceeded.Error())
	assert.Equal(t, int64(50), exceeded.Count)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), exceeded.ResetsAt)
}

func TestImageService_Denied_ResetsAtFollowsLedgerDay(t *testing.T) {
	svc, m := newTestImageSvc(t)
	// the ledger evaluated the charge at 23:59:59, the service clock has rolled over
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC) }

	m.quota.EXPECT().
		ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.ChargeResult{Allowed: false, Count: 50, Ceiling: 50, Day: "2026-03-14"}, nil)

	_, err := svc.RemoveBackground(context.Background(), testPrincipal, []byte("img"))

	var exceeded *QuotaExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), exceeded.ResetsAt)
}

func TestImageService_RemoveBackground_FailureStillCharged(t *testing.T) {
	svc, m := newTestImageSvc(t)

	gomock.InOrder(
		m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(allowed(3), nil),
		m.remover.EXPECT().RemoveBackground(gomock.Any(), gomock.Any()).Return(nil, errors.New("rembg: connection refused")),
	)

	_, err := svc.RemoveBackground(context.Background(), testPrincipal, []byte("img"))
	assert.ErrorIs(t, err, ErrProcessingFailed)
}

func TestImageService_RemoveBackground_StoreUnavailable(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.quota.EXPECT().
		ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.ChargeResult{}, ErrStoreUnavailable)

	_, err := svc.RemoveBackground(context.Background(), testPrincipal, []byte("img"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// ── Upscale ──────────────────────────────────────────────────────────────────

func TestImageService_Upscale_ModelUnavailableNotCharged(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.upscaler.EXPECT().Available().Return(false)
	m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Upscale(context.Background(), testPrincipal, pngOfSize(t, 10, 10))
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestImageService_Upscale_SmallImage(t *testing.T) {
	svc, m := newTestImageSvc(t)
	input := pngOfSize(t, 800, 600)

	gomock.InOrder(
		m.upscaler.EXPECT().Available().Return(true),
		m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), "u1", "cheap_count", int64(50)).Return(allowed(1), nil),
		m.upscaler.EXPECT().Upsample(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, img image.Image) (image.Image, error) {
				assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())
				return image.NewRGBA(image.Rect(0, 0, 3200, 2400)), nil
			},
		),
	)

	got, err := svc.Upscale(context.Background(), testPrincipal, input)
	require.NoError(t, err)
	assert.True(t, imaging.IsPNG(got))

	cfg, _, err := imaging.DecodeConfig(got)
	require.NoError(t, err)
	assert.Equal(t, 3200, cfg.Width)
	assert.Equal(t, 2400, cfg.Height)
}

func TestImageService_Upscale_SizeGuardReturnsOriginal(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{name: "wide", w: 1600, h: 900},
		{name: "tall", w: 900, h: 1201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestImageSvc(t)
			input := pngOfSize(t, tt.w, tt.h)

			m.upscaler.EXPECT().Available().Return(true)
			m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(allowed(1), nil)
			m.upscaler.EXPECT().Upsample(gomock.Any(), gomock.Any()).Times(0)

			got, err := svc.Upscale(context.Background(), testPrincipal, input)
			require.NoError(t, err)
			assert.Equal(t, input, got)
		})
	}
}

func TestImageService_Upscale_ExactlyAtGuardIsUpscaled(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.upscaler.EXPECT().Available().Return(true)
	m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(allowed(1), nil)
	m.upscaler.EXPECT().Upsample(gomock.Any(), gomock.Any()).Return(image.NewRGBA(image.Rect(0, 0, 4, 4)), nil)

	_, err := svc.Upscale(context.Background(), testPrincipal, pngOfSize(t, 1200, 1200))
	assert.NoError(t, err)
}

func TestImageService_Upscale_Denied(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.upscaler.EXPECT().Available().Return(true)
	m.quota.EXPECT().
		ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.ChargeResult{Allowed: false, Count: 50, Ceiling: 50}, nil)
	m.upscaler.EXPECT().Upsample(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Upscale(context.Background(), testPrincipal, pngOfSize(t, 10, 10))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestImageService_Upscale_UndecodableInputConsumesQuota(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.upscaler.EXPECT().Available().Return(true)
	m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(allowed(2), nil)

	_, err := svc.Upscale(context.Background(), testPrincipal, []byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrProcessingFailed)
	assert.ErrorIs(t, err, imaging.ErrUnsupportedImage)
}

func TestImageService_Upscale_TruncatedLargeImageFails(t *testing.T) {
	svc, m := newTestImageSvc(t)
	// the header still announces 1600x900 but the pixel data is cut off
	truncated := pngOfSize(t, 1600, 900)[:40]

	cfg, _, err := imaging.DecodeConfig(truncated)
	require.NoError(t, err)
	require.Equal(t, 1600, cfg.Width)

	m.upscaler.EXPECT().Available().Return(true)
	m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(allowed(2), nil)
	m.upscaler.EXPECT().Upsample(gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.Upscale(context.Background(), testPrincipal, truncated)
	assert.ErrorIs(t, err, ErrProcessingFailed)
	assert.ErrorIs(t, err, imaging.ErrUnsupportedImage)
	assert.Nil(t, got)
}

func TestImageService_Upscale_EngineFailure(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.upscaler.EXPECT().Available().Return(true)
	m.quota.EXPECT().ChargeIfAllowed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(allowed(2), nil)
	m.upscaler.EXPECT().Upsample(gomock.Any(), gomock.Any()).Return(nil, errors.New("runtime timeout"))

	_, err := svc.Upscale(context.Background(), testPrincipal, pngOfSize(t, 10, 10))
	assert.ErrorIs(t, err, ErrProcessingFailed)
}

func TestImageService_UpscalerState(t *testing.T) {
	svc, m := newTestImageSvc(t)

	m.upscaler.EXPECT().State().Return(models.CapabilityAvailable)
	assert.Equal(t, models.CapabilityAvailable, svc.UpscalerState())
}
