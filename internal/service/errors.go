package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMalformedCredential = errors.New("malformed credential")
	ErrUnauthorized        = errors.New("invalid or expired token")

	ErrQuotaExceeded    = errors.New("daily limit reached")
	ErrStoreUnavailable = errors.New("quota store unavailable")

	ErrModelUnavailable = errors.New("upscaler model is not loaded")
	ErrProcessingFailed = errors.New("image processing failed")
)

// QuotaExceededError is returned when a charge is denied because the user
// already reached the daily ceiling.
type QuotaExceededError struct {
	Ceiling  int64
	Count    int64
	ResetsAt time.Time
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("Daily limit reached (%d/%d). Resets at midnight UTC.", e.Ceiling, e.Ceiling)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}
