package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/internal/mock"
	"github.com/MKhiriev/go-image-gateway/internal/service"
	"github.com/MKhiriev/go-image-gateway/models"
)

const testToken = "stub-token"

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-png-payload")

type routeMocks struct {
	auth  *mock.MockAuthService
	quota *mock.MockQuotaService
	image *mock.MockImageService
}

func newTestRouter(t *testing.T, maxUpload int64) (http.Handler, routeMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := routeMocks{
		auth:  mock.NewMockAuthService(ctrl),
		quota: mock.NewMockQuotaService(ctrl),
		image: mock.NewMockImageService(ctrl),
	}

	cfg := config.StructuredConfig{
		Quota:  config.Quota{Bucket: "cheap_count", Ceiling: 50},
		Server: config.Server{MaxUploadBytes: maxUpload, RequestTimeout: time.Minute},
	}
	services := &service.Services{AuthService: m.auth, QuotaService: m.quota, ImageService: m.image}

	return NewHandler(services, metrics.New(), cfg, logger.Nop()).Init(), m
}

func expectValidToken(m routeMocks) {
	m.auth.EXPECT().Verify(gomock.Any(), testToken).Return(models.Principal{UserID: "u1"}, nil)
}

// uploadRequest builds a multipart POST with data under field.
func uploadRequest(t *testing.T, path, field string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── Health ───────────────────────────────────────────────────────────────────

func TestRoutes_Health(t *testing.T) {
	tests := []struct {
		state models.CapabilityState
		want  string
	}{
		{state: models.CapabilityAvailable, want: "loaded"},
		{state: models.CapabilityUnavailable, want: "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			router, m := newTestRouter(t, 1<<20)
			m.image.EXPECT().UpscalerState().Return(tt.state)

			rr := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var body models.HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "running", body.Status)
			assert.Equal(t, tt.want, body.AIModel)
		})
	}
}

func TestRoutes_Metrics(t *testing.T) {
	router, m := newTestRouter(t, 1<<20)
	m.image.EXPECT().UpscalerState().Return(models.CapabilityAvailable)

	serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	rr := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `image_gateway_http_requests_total{method="GET",route="/",status="200"} 1`)
}

// ── Authentication happens before anything is charged ───────────────────────

func TestRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/remove-bg"},
		{http.MethodPost, "/upscale"},
		{http.MethodGet, "/limits"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			router, _ := newTestRouter(t, 1<<20)

			rr := serve(router, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Invalid auth header", decodeDetail(t, rr))
		})
	}
}

func TestRoutes_InvalidTokenNeverCharges(t *testing.T) {
	router, m := newTestRouter(t, 1<<20)
	m.auth.EXPECT().Verify(gomock.Any(), testToken).Return(models.Principal{}, service.ErrUnauthorized)
	m.image.EXPECT().Upscale(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rr := serve(router, uploadRequest(t, "/upscale", "file", pngBytes))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid or expired token", decodeDetail(t, rr))
}

// ── /remove-bg ───────────────────────────────────────────────────────────────

func TestRoutes_RemoveBackground(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{
			name:       "daily limit",
			err:        &service.QuotaExceededError{Ceiling: 50, Count: 50},
			wantStatus: http.StatusTooManyRequests,
			wantDetail: "Daily limit reached (50/50). Resets at midnight UTC.",
		},
		{
			name:       "remover failure",
			err:        fmt.Errorf("%w: %w", service.ErrProcessingFailed, errors.New("upstream 502")),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Background removal failed",
		},
		{
			name:       "store failure",
			err:        service.ErrStoreUnavailable,
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, 1<<20)
			expectValidToken(m)

			input := []byte("jpeg-bytes")
			call := m.image.EXPECT().RemoveBackground(gomock.Any(), models.Principal{UserID: "u1"}, input)
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(pngBytes, nil)
			}

			rr := serve(router, uploadRequest(t, "/remove-bg", "file", input))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, rr))
				return
			}
			assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
			assert.Equal(t, pngBytes, rr.Body.Bytes())
		})
	}
}

// ── /upscale ─────────────────────────────────────────────────────────────────

func TestRoutes_Upscale(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{
			name:       "model not loaded",
			err:        service.ErrModelUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: "AI Model not loaded",
		},
		{
			name:       "engine failure is generic",
			err:        fmt.Errorf("%w: %w", service.ErrProcessingFailed, errors.New("tensor shape mismatch")),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Upscale failed",
		},
		{
			name:       "daily limit",
			err:        &service.QuotaExceededError{Ceiling: 50, Count: 50},
			wantStatus: http.StatusTooManyRequests,
			wantDetail: "Daily limit reached (50/50). Resets at midnight UTC.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, 1<<20)
			expectValidToken(m)

			call := m.image.EXPECT().Upscale(gomock.Any(), models.Principal{UserID: "u1"}, pngBytes)
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(pngBytes, nil)
			}

			rr := serve(router, uploadRequest(t, "/upscale", "file", pngBytes))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, rr))
				return
			}
			assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		})
	}
}

// ── Upload validation happens after auth and before charging ────────────────

func TestRoutes_UploadValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		maxUpload  int64
		wantStatus int
		wantDetail string
	}{
		{
			name:       "missing file field",
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "/upscale", "", nil) },
			maxUpload:  1 << 20,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "file is required",
		},
		{
			name:       "wrong field name",
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "/upscale", "image", pngBytes) },
			maxUpload:  1 << 20,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "file is required",
		},
		{
			name:       "empty file",
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "/remove-bg", "file", []byte{}) },
			maxUpload:  1 << 20,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "file is required",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/remove-bg", strings.NewReader(`{"file":"x"}`))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+testToken)
				return req
			},
			maxUpload:  1 << 20,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "file is required",
		},
		{
			name:       "too large",
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "/upscale", "file", bytes.Repeat([]byte("a"), 4096)) },
			maxUpload:  1024,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantDetail: "File too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, tt.maxUpload)
			expectValidToken(m)
			m.image.EXPECT().Upscale(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			m.image.EXPECT().RemoveBackground(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			rr := serve(router, tt.req(t))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rr))
		})
	}
}

// ── /limits ──────────────────────────────────────────────────────────────────

func TestRoutes_Limits(t *testing.T) {
	router, m := newTestRouter(t, 1<<20)
	expectValidToken(m)

	resetsAt := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	m.quota.EXPECT().
		Usage(gomock.Any(), "u1", "cheap_count", int64(50)).
		Return(models.Usage{
			Day: "2026-03-14", Bucket: "cheap_count", Used: 12, Limit: 50, Remaining: 38, ResetsAt: resetsAt,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/limits", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)

	var usage models.Usage
	require.NoError(t, json.Unmarshal(body, &usage))
	assert.Equal(t, int64(12), usage.Used)
	assert.Equal(t, int64(38), usage.Remaining)
	assert.False(t, usage.LimitReached)
	assert.True(t, resetsAt.Equal(usage.ResetsAt))
	assert.Contains(t, string(body), `"limit_reached":false`)
}

func TestRoutes_LimitsStoreError(t *testing.T) {
	router, m := newTestRouter(t, 1<<20)
	expectValidToken(m)
	m.quota.EXPECT().Usage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Usage{}, service.ErrStoreUnavailable)

	req := httptest.NewRequest(http.MethodGet, "/limits", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rr := serve(router, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", decodeDetail(t, rr))
}

// ── Router behaviour ─────────────────────────────────────────────────────────

func TestRoutes_WrongMethodIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, 1<<20)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/upscale", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not Found", decodeDetail(t, rr))
}

func TestRoutes_UnknownPathIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, 1<<20)

	rr := serve(router, httptest.NewRequest(http.MethodPost, "/generate", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "Not Found", decodeDetail(t, rr))
}

func TestRoutes_CORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, 1<<20)

	req := httptest.NewRequest(http.MethodOptions, "/upscale", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := serve(router, req)

	assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRoutes_TraceIDHeader(t *testing.T) {
	router, m := newTestRouter(t, 1<<20)
	m.image.EXPECT().UpscalerState().Return(models.CapabilityAvailable)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rr := serve(router, req)

	assert.Equal(t, "trace-123", rr.Header().Get(traceIDHeader))
}

// ── client IP and proxy headers ──────────────────────────────────────────────

func TestRoutes_RateLimitClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		wantSecond int
	}{
		{name: "forwarded header ignored by default", trustProxy: false, wantSecond: http.StatusTooManyRequests},
		{name: "forwarded header identifies client behind trusted proxy", trustProxy: true, wantSecond: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			services := &service.Services{
				AuthService:  mock.NewMockAuthService(ctrl),
				QuotaService: mock.NewMockQuotaService(ctrl),
				ImageService: mock.NewMockImageService(ctrl),
			}
			cfg := config.StructuredConfig{
				Quota: config.Quota{Bucket: "cheap_count", Ceiling: 50},
				Server: config.Server{
					RateLimitRPS:      0.001,
					RateLimitBurst:    1,
					TrustProxyHeaders: tt.trustProxy,
				},
			}
			router := NewHandler(services, metrics.New(), cfg, logger.Nop()).Init()

			first := httptest.NewRequest(http.MethodGet, "/limits", nil)
			first.Header.Set("X-Forwarded-For", "203.0.113.10")
			require.Equal(t, http.StatusUnauthorized, serve(router, first).Code)

			second := httptest.NewRequest(http.MethodGet, "/limits", nil)
			second.Header.Set("X-Forwarded-For", "203.0.113.20")
			rr := serve(router, second)

			assert.Equal(t, tt.wantSecond, rr.Code)
		})
	}
}
