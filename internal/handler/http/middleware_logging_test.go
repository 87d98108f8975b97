package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-image-gateway/internal/logger"
)

// makeRequest creates a test request whose context carries a logger writing
// to buf, the same way withTraceID installs it.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf).With().Timestamp().Logger()
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
	}{
		{
			name:            "health 200",
			method:          http.MethodGet,
			path:            "/",
			handlerStatus:   http.StatusOK,
			handlerResponse: `{"status":"running"}`,
			checkLogContains: []string{
				`"method":"GET"`,
				`"uri":"/"`,
				`"status":200`,
				`"duration":`,
				`"size":20`,
			},
		},
		{
			name:            "upscale 429",
			method:          http.MethodPost,
			path:            "/upscale",
			handlerStatus:   http.StatusTooManyRequests,
			handlerResponse: `{"detail":"Daily limit reached (50/50). Resets at midnight UTC."}`,
			checkLogContains: []string{
				`"method":"POST"`,
				`"uri":"/upscale"`,
				`"status":429`,
			},
		},
		{
			name:          "preflight without body",
			method:        http.MethodOptions,
			path:          "/remove-bg",
			handlerStatus: http.StatusNoContent,
			checkLogContains: []string{
				`"method":"OPTIONS"`,
				`"status":204`,
				`"size":0`,
			},
		},
		{
			name:            "query parameters preserved in uri",
			method:          http.MethodGet,
			path:            "/limits?bucket=cheap_count",
			handlerStatus:   http.StatusOK,
			handlerResponse: "{}",
			checkLogContains: []string{
				`"uri":"/limits?bucket=cheap_count"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerResponse != "" {
					_, _ = w.Write([]byte(tt.handlerResponse))
				}
			})

			rr := httptest.NewRecorder()
			withLogging(next).ServeHTTP(rr, makeRequest(tt.method, tt.path, &logBuf))

			assert.Equal(t, tt.handlerStatus, rr.Code)
			for _, expected := range tt.checkLogContains {
				assert.Contains(t, logBuf.String(), expected)
			}
		})
	}
}

func TestWithLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{status: http.StatusOK, wantLevel: `"level":"info"`},
		{status: http.StatusUnauthorized, wantLevel: `"level":"warn"`},
		{status: http.StatusTooManyRequests, wantLevel: `"level":"warn"`},
		{status: http.StatusServiceUnavailable, wantLevel: `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var logBuf bytes.Buffer
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodPost, "/upscale", &logBuf))

			assert.Contains(t, logBuf.String(), tt.wantLevel)
			assert.Contains(t, logBuf.String(), `"message":"request served"`)
		})
	}
}

func TestWithLogging_RoutePatternInsideRouter(t *testing.T) {
	var logBuf bytes.Buffer

	router := chi.NewRouter()
	router.Use(withLogging)
	router.Get("/limits", func(w http.ResponseWriter, r *http.Request) {})

	router.ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/limits?x=1", &logBuf))

	assert.Contains(t, logBuf.String(), `"route":"/limits"`)
	assert.Contains(t, logBuf.String(), `"status":200`)
}

func TestWithLogging_LargeBodySize(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	})

	rr := httptest.NewRecorder()
	withLogging(next).ServeHTTP(rr, makeRequest(http.MethodPost, "/upscale", &logBuf))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logBuf.String(), `"status":200`)
	assert.Contains(t, logBuf.String(), `"size":4096`)
}

func TestWithLogging_DurationObserved(t *testing.T) {
	var logBuf bytes.Buffer
	delay := 30 * time.Millisecond

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
	})

	start := time.Now()
	withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/", &logBuf))

	assert.GreaterOrEqual(t, time.Since(start), delay)
	assert.Contains(t, logBuf.String(), `"duration":`)
}

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	assert.Panics(t, func() {
		withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/panic", &logBuf))
	}, "withLogging must leave panics to Recoverer")
}

func TestWithLogging_NopLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/nop", nil)
	req = req.WithContext(logger.Nop().WithContext(req.Context()))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		withLogging(next).ServeHTTP(rr, req)
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}
