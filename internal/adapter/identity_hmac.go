package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

// hmacIdentityProvider verifies HS256 tokens signed with a shared secret.
// It exists for local development and tests where no Firebase project is
// available.
type hmacIdentityProvider struct {
	signKey string
	issuer  string
}

// NewHMACIdentityProvider returns an [IdentityProvider] for cfg.TokenSignKey
// and cfg.TokenIssuer.
func NewHMACIdentityProvider(cfg config.App) IdentityProvider {
	return &hmacIdentityProvider{
		signKey: cfg.TokenSignKey,
		issuer:  cfg.TokenIssuer,
	}
}

func (p *hmacIdentityProvider) VerifyToken(_ context.Context, token string) (string, error) {
	subject, err := utils.ValidateAndParseJWTToken(token, p.signKey, p.issuer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return subject, nil
}
