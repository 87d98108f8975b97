package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-image-gateway/internal/logger"
)

func TestIPRateLimiter_Allow(t *testing.T) {
	l := newIPRateLimiter(1, 2)
	now := time.Now()

	assert.True(t, l.allow("10.0.0.1", now))
	assert.True(t, l.allow("10.0.0.1", now))
	assert.False(t, l.allow("10.0.0.1", now), "burst exhausted")
	assert.True(t, l.allow("10.0.0.2", now), "clients are independent")

	assert.True(t, l.allow("10.0.0.1", now.Add(time.Second)), "token refilled")
}

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	l := newIPRateLimiter(1, 1)
	now := time.Now()

	l.allow("old", now.Add(-2*clientIdleTTL))
	l.allow("fresh", now)

	assert.Equal(t, 1, l.evictIdle(now))
	assert.Equal(t, 1, l.size())
}

func TestIPRateLimiter_NonPositiveBurst(t *testing.T) {
	l := newIPRateLimiter(5, 0)

	assert.Equal(t, 1, l.burst)
}

func TestWithRateLimit(t *testing.T) {
	h := &Handler{logger: logger.Nop(), limiter: newIPRateLimiter(0.001, 1)}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/upscale", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		h.withRateLimit(next).ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send("192.0.2.1:5000").Code)

	rr := send("192.0.2.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "Too many requests", decodeDetail(t, rr))
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send("192.0.2.2:5000").Code)
}

func TestWithRateLimit_Disabled(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for range 20 {
		rr := httptest.NewRecorder()
		h.withRateLimit(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/upscale", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "203.0.113.7:41000"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.RemoteAddr = "203.0.113.8"
	assert.Equal(t, "203.0.113.8", clientIP(req))
}
