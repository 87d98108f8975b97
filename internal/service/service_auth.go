package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-image-gateway/internal/adapter"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/models"
)

// authService verifies bearer credentials against an identity provider.
type authService struct {
	// provider checks signature, audience, issuer and expiry of the credential.
	provider adapter.IdentityProvider

	logger *logger.Logger
}

// NewAuthService constructs an AuthService backed by provider.
//
// The returned service is safe for concurrent use.
func NewAuthService(provider adapter.IdentityProvider, logger *logger.Logger) AuthService {
	return &authService{
		provider: provider,
		logger:   logger,
	}
}

// Verify returns the principal the credential was issued for.
//
// Returns:
//   - ErrMalformedCredential if credential is empty.
//   - ErrUnauthorized for any provider failure or an empty subject. The
//     provider error is logged but never returned, so callers cannot tell
//     an expired token from a forged one.
func (a *authService) Verify(ctx context.Context, credential string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(credential) == "" {
		return models.Principal{}, ErrMalformedCredential
	}

	userID, err := a.provider.VerifyToken(ctx, credential)
	if err != nil {
		log.Warn().Err(err).Str("func", "authService.Verify").Msg("token verification failed")
		return models.Principal{}, ErrUnauthorized
	}
	if userID == "" {
		log.Warn().Str("func", "authService.Verify").Msg("token carries an empty subject")
		return models.Principal{}, ErrUnauthorized
	}

	return models.Principal{UserID: userID}, nil
}
