// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	certsRefreshKey      = "certs"
)

// FirebaseIdentityProvider verifies Firebase ID tokens (RS256) against the
// x509 certificates Google publishes for securetoken@system.gserviceaccount.com.
//
// The certificate set is cached for the max-age announced by the endpoint and
// refetched lazily on expiry; [FirebaseIdentityProvider.Refresh] can also be
// driven by a background worker so requests rarely wait on the fetch.
type FirebaseIdentityProvider struct {
	client    *utils.HTTPClient
	certsURL  string
	projectID string
	issuer    string
	now       func() time.Time

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time

	// refreshes collapses concurrent fetches triggered by an expired key set.
	refreshes singleflight.Group

	logger *logger.Logger
}

// NewFirebaseIdentityProvider constructs a provider for cfg.FirebaseProjectID.
// No network call is made until the first verification or refresh.
func NewFirebaseIdentityProvider(cfg config.App, logger *logger.Logger) (*FirebaseIdentityProvider, error) {
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("empty firebase project id")
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(10 * time.Second)

	return &FirebaseIdentityProvider{
		client:    client,
		certsURL:  cfg.FirebaseCertsURL,
		projectID: cfg.FirebaseProjectID,
		issuer:    firebaseIssuerPrefix + cfg.FirebaseProjectID,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// VerifyToken implements [IdentityProvider]. It checks the RS256 signature
// with the key named by the "kid" header, the issuer, the audience (project
// id), expiry and issued-at, and returns the non-empty "sub" claim.
func (p *FirebaseIdentityProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, p.keyFunc(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

func (p *FirebaseIdentityProvider) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, ErrUnknownKeyID
		}

		keys, err := p.publicKeys(ctx)
		if err != nil {
			return nil, err
		}

		key, ok := keys[kid]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKeyID, kid)
		}

		return key, nil
	}
}

// publicKeys returns the cached key set, refreshing it when it has expired.
// Verifications that find the set expired at the same time share one fetch.
func (p *FirebaseIdentityProvider) publicKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	if keys, ok := p.cachedKeys(); ok {
		return keys, nil
	}

	_, err, _ := p.refreshes.Do(certsRefreshKey, func() (any, error) {
		// a fetch that finished just before this one started already renewed the set
		if _, ok := p.cachedKeys(); ok {
			return nil, nil
		}
		return nil, p.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.keys, nil
}

func (p *FirebaseIdentityProvider) cachedKeys() (map[string]*rsa.PublicKey, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.keys != nil && p.now().Before(p.expiresAt) {
		return p.keys, true
	}

	return nil, false
}

// Refresh fetches and parses the signing certificates and replaces the cached
// key set. On failure the previous key set is kept.
func (p *FirebaseIdentityProvider) Refresh(ctx context.Context) error {
	log := logger.FromContext(ctx)

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(p.certsURL)
	if err != nil {
		log.Err(err).Str("func", "FirebaseIdentityProvider.Refresh").Msg("error fetching signing certificates")
		return fmt.Errorf("%w: %w", ErrCertificatesUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "FirebaseIdentityProvider.Refresh").Msg("certificates endpoint answered with error")
		return fmt.Errorf("%w: %w", ErrCertificatesUnavailable, err)
	}

	var certs map[string]string
	if err = json.Unmarshal(resp.Body(), &certs); err != nil {
		return fmt.Errorf("%w: decode certificates: %w", ErrCertificatesUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if err != nil {
			return fmt.Errorf("%w: parse certificate %s: %w", ErrCertificatesUnavailable, kid, err)
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: empty certificate set", ErrCertificatesUnavailable)
	}

	maxAge := parseMaxAge(resp.Header().Get("Cache-Control"))

	p.mu.Lock()
	p.keys = keys
	p.expiresAt = p.now().Add(maxAge)
	p.mu.Unlock()

	log.Debug().
		Str("func", "FirebaseIdentityProvider.Refresh").
		Int("keys", len(keys)).
		Dur("max_age", maxAge).
		Msg("signing certificates refreshed")

	return nil
}

// parseMaxAge extracts max-age from a Cache-Control header. Missing or broken
// values yield zero, i.e. the next verification refetches.
func parseMaxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		value, ok := strings.CutPrefix(directive, "max-age=")
		if !ok {
			continue
		}

		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return 0
		}

		return time.Duration(seconds) * time.Second
	}

	return 0
}
