package http

import (
	"net/http"
	"time"
)

const unmatchedRoute = "unmatched"

// withMetrics records the status and latency of every request, labelled by
// the chi route pattern rather than the raw path.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(mw, r)

		route := routePattern(r)
		if route == "" {
			route = unmatchedRoute
		}

		h.metrics.ObserveRequest(route, r.Method, mw.statusCode(), time.Since(start))
	})
}
