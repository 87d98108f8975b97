package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, missing listen address or non-positive upload limit).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid ledger storage settings
	// (for example, an unknown backend or an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid identity settings
	// (for example, a Firebase provider without a project id).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidQuotaConfigs indicates an empty bucket or non-positive ceiling.
	ErrInvalidQuotaConfigs = errors.New("invalid quota configuration")
	// ErrInvalidCapabilitiesConfigs indicates invalid collaborator settings.
	ErrInvalidCapabilitiesConfigs = errors.New("invalid capabilities configuration")
)
