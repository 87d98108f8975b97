// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while reading a processing request. Callers can
// match against them with [errors.Is].
var (
	// ErrFileRequired is returned when the multipart body has no non-empty
	// "file" field, or the body is not multipart at all.
	ErrFileRequired = errors.New("file is required")

	// ErrFileTooLarge is returned when the request body exceeds the
	// configured upload limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoPrincipal is returned when a protected handler runs without a
	// principal in its context, which means the auth middleware was skipped.
	ErrNoPrincipal = errors.New("no principal in request context")
)
