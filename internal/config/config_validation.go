// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidServerConfigs)
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max upload bytes must be positive", ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimitRPS < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidServerConfigs)
	}

	switch cfg.Storage.LedgerBackend {
	case LedgerBackendPostgres, LedgerBackendSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s backend requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.LedgerBackend)
		}
	case LedgerBackendRedis:
		if cfg.Storage.Redis.Address == "" {
			return fmt.Errorf("%w: redis backend requires an address", ErrInvalidStorageConfigs)
		}
	case LedgerBackendMemory:
	default:
		return fmt.Errorf("%w: unknown ledger backend %q", ErrInvalidStorageConfigs, cfg.Storage.LedgerBackend)
	}

	switch cfg.App.IdentityProvider {
	case IdentityProviderFirebase:
		if cfg.App.FirebaseProjectID == "" {
			return fmt.Errorf("%w: firebase provider requires a project id", ErrInvalidAppConfigs)
		}
	case IdentityProviderHMAC:
		if cfg.App.TokenSignKey == "" {
			return fmt.Errorf("%w: hmac provider requires a sign key", ErrInvalidAppConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown identity provider %q", ErrInvalidAppConfigs, cfg.App.IdentityProvider)
	}

	if cfg.Quota.Bucket == "" || cfg.Quota.Ceiling <= 0 {
		return ErrInvalidQuotaConfigs
	}
	if cfg.Quota.RetryBaseDelay <= 0 {
		return fmt.Errorf("%w: retry base delay must be positive", ErrInvalidQuotaConfigs)
	}

	if cfg.Capabilities.RembgURL == "" {
		return fmt.Errorf("%w: empty rembg url", ErrInvalidCapabilitiesConfigs)
	}
	switch cfg.Capabilities.UpscalerEngine {
	case UpscalerEngineResample:
	case UpscalerEngineRemote:
		if cfg.Capabilities.UpscalerURL == "" {
			return fmt.Errorf("%w: remote engine requires an url", ErrInvalidCapabilitiesConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown upscaler engine %q", ErrInvalidCapabilitiesConfigs, cfg.Capabilities.UpscalerEngine)
	}
	if cfg.Capabilities.ModelPath == "" || cfg.Capabilities.UpscaleMaxSide <= 0 {
		return ErrInvalidCapabilitiesConfigs
	}

	return nil
}
