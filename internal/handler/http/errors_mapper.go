package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-image-gateway/internal/app"
	"github.com/MKhiriev/go-image-gateway/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrMalformedCredential: http.StatusUnauthorized,
	service.ErrUnauthorized:        http.StatusUnauthorized,
	service.ErrQuotaExceeded:       http.StatusTooManyRequests,
	service.ErrModelUnavailable:    http.StatusServiceUnavailable,
	service.ErrProcessingFailed:    http.StatusInternalServerError,
	service.ErrStoreUnavailable:    http.StatusInternalServerError,

	ErrFileRequired: http.StatusUnprocessableEntity,
	ErrFileTooLarge: http.StatusRequestEntityTooLarge,
	ErrNoPrincipal:  http.StatusUnauthorized,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// detailFromError returns the client-facing message for err. Processing
// failures are reported as processingDetail; their cause is only logged.
func detailFromError(err error, processingDetail string) string {
	var exceeded *service.QuotaExceededError

	switch {
	case errors.As(err, &exceeded):
		return exceeded.Error()
	case errors.Is(err, service.ErrModelUnavailable):
		return app.MsgModelNotLoaded
	case errors.Is(err, service.ErrMalformedCredential),
		errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, ErrNoPrincipal):
		return app.MsgInvalidOrExpiredToken
	case errors.Is(err, ErrFileRequired):
		return app.MsgFileRequired
	case errors.Is(err, ErrFileTooLarge):
		return app.MsgFileTooLarge
	case errors.Is(err, service.ErrProcessingFailed):
		return processingDetail
	default:
		return app.MsgInternalServerError
	}
}
