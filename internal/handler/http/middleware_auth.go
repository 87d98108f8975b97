// Package http implements the HTTP transport layer of the image gateway.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, metrics and rate
// limiting are all handled at this layer before requests are forwarded to
// the service layer.
package http

import (
	"net/http"

	"github.com/MKhiriev/go-image-gateway/internal/app"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, verifies it via
// [service.AuthService.Verify] and, on success, stores the principal in the
// request context under [utils.PrincipalCtxKey] before delegating to the next
// handler. Nothing downstream (in particular the quota ledger) runs for a
// rejected request.
//
// The middleware rejects requests with HTTP 401 Unauthorized:
//   - {"detail":"Invalid auth header"} when the header is absent, does not use
//     the Bearer scheme or carries an empty token;
//   - {"detail":"Invalid or expired token"} when verification fails.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn().Err(err).Msg("rejected authorization header")
			utils.WriteDetail(w, app.MsgInvalidAuthHeader, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		principal, err := h.services.AuthService.Verify(ctx, token)
		if err != nil {
			log.Warn().Err(err).Msg("token verification failed")
			utils.WriteDetail(w, app.MsgInvalidOrExpiredToken, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(ctx, principal)))
	})
}
