// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// image gateway handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// the {"detail": ...} body of failed HTTP responses. Keeping them in one place
// ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidAuthHeader is returned when the "Authorization" header is
	// absent, does not use the Bearer scheme or carries an empty token.
	MsgInvalidAuthHeader = "Invalid auth header"

	// MsgInvalidOrExpiredToken is returned when the identity provider rejects
	// the bearer token for any reason.
	MsgInvalidOrExpiredToken = "Invalid or expired token"

	// MsgFileRequired is returned when a processing request has no "file"
	// multipart field.
	MsgFileRequired = "file is required"

	// MsgFileTooLarge is returned when the upload exceeds the configured limit.
	MsgFileTooLarge = "File too large"

	// MsgModelNotLoaded is returned by the upscale endpoint when the
	// super-resolution capability failed to initialise at startup.
	MsgModelNotLoaded = "AI Model not loaded"

	// MsgBackgroundRemovalFailed is returned when the background removal
	// service failed after the request was charged.
	MsgBackgroundRemovalFailed = "Background removal failed"

	// MsgUpscaleFailed is returned when decoding, upsampling or encoding
	// failed after the request was charged.
	MsgUpscaleFailed = "Upscale failed"

	// MsgNotFound is returned for unknown paths and for known paths requested
	// with a method they do not serve.
	MsgNotFound = "Not Found"

	// MsgTooManyRequests is returned by the per-client-IP rate limiter.
	MsgTooManyRequests = "Too many requests"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"
)

// StatusRunning is the status reported by the health endpoint.
const StatusRunning = "running"
