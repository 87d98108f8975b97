// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external collaborators of the
// image gateway: the identity provider that verifies bearer tokens and the
// background removal service.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling.
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityProvider verifies an opaque bearer token and returns the stable
// subject (user id) it was issued for. Any failure (bad signature, wrong
// audience or issuer, expiry, unreachable key set) is reported as an error;
// callers must not distinguish between them.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// BackgroundRemover removes the background of an encoded image and returns
// the result as PNG bytes.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, image []byte) ([]byte, error)
}
