package adapter

import "errors"

// Errors returned by collaborator calls that answered with a non-2xx status.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
)

// Identity verification errors.
var (
	// ErrInvalidToken wraps every reason a token was rejected.
	ErrInvalidToken = errors.New("invalid identity token")

	// ErrUnknownKeyID is returned when the token header names a signing key
	// that is not in the current key set.
	ErrUnknownKeyID = errors.New("unknown signing key id")

	// ErrCertificatesUnavailable is returned when the signing certificates
	// cannot be fetched or parsed.
	ErrCertificatesUnavailable = errors.New("signing certificates unavailable")
)

// ErrEmptyResponse is returned when a collaborator answered 2xx with no body.
var ErrEmptyResponse = errors.New("empty response body")
