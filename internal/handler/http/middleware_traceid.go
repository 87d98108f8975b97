package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"

	// maxTraceIDLength bounds caller supplied ids before they reach the logs.
	maxTraceIDLength = 128
)

// withTraceID propagates the caller's X-Trace-ID or issues a new UUIDv7, then
// installs a child logger carrying it as trace_id. UUID ids are normalised to
// their canonical form; ids with characters outside [A-Za-z0-9._:-] or longer
// than maxTraceIDLength are replaced.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := h.traceID(r.Header.Get(traceIDHeader))

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func (h *Handler) traceID(incoming string) string {
	if canonical, ok := utils.Canonical(incoming); ok {
		return canonical
	}
	if validTraceID(incoming) {
		return incoming
	}

	return h.traceIDs.Generate()
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}

	return true
}
