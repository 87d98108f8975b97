package models

// Principal is the identity derived from a verified bearer credential.
//
// It lives only for the duration of a request and is never persisted.
type Principal struct {
	// UserID is the stable subject identifier returned by the identity provider.
	UserID string `json:"user_id"`
}
