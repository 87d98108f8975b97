// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the image
// gateway. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds identity verification and logging settings.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the quota ledger backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Quota holds the daily allowance shared by the processing endpoints.
	Quota Quota `envPrefix:"QUOTA_"`

	// Server holds network, timeout and upload settings of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Capabilities configures the external image-processing collaborators.
	Capabilities Capabilities `envPrefix:"CAPABILITIES_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// LogLevel is the minimal zerolog level ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// IdentityProvider selects the bearer token verifier: "firebase" or "hmac".
	// Env: APP_IDENTITY_PROVIDER
	IdentityProvider string `env:"IDENTITY_PROVIDER"`

	// FirebaseProjectID is the expected "aud" claim and the suffix of the
	// expected issuer of Firebase ID tokens.
	// Env: APP_FIREBASE_PROJECT_ID
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`

	// FirebaseCertsURL is the endpoint publishing the x509 certificates that
	// sign Firebase ID tokens.
	// Env: APP_FIREBASE_CERTS_URL
	FirebaseCertsURL string `env:"FIREBASE_CERTS_URL"`

	// CertsRefreshInterval is how often the signing certificates are refreshed
	// in the background.
	// Env: APP_CERTS_REFRESH_INTERVAL
	CertsRefreshInterval time.Duration `env:"CERTS_REFRESH_INTERVAL"`

	// TokenSignKey is the shared HS256 secret used by the "hmac" provider.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim for the "hmac" provider.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Storage groups the configuration of the quota ledger backends.
type Storage struct {
	// LedgerBackend is one of "postgres", "sqlite", "redis" or "memory".
	// Env: STORAGE_LEDGER_BACKEND
	LedgerBackend string `env:"LEDGER_BACKEND"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the redis connection settings.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational ledger backends.
type DB struct {
	// DSN is the PostgreSQL connection string or the SQLite file DSN
	// (e.g. "file:ledger.db?_txlock=immediate").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds connection settings for the redis ledger backend.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
	// KeyPrefix is prepended to every ledger key.
	// Env: STORAGE_REDIS_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
	// Retention sets an expiry on day records; zero keeps them forever.
	// Env: STORAGE_REDIS_RETENTION
	Retention time.Duration `env:"RETENTION"`
}

// Quota configures the daily allowance shared by both processing endpoints.
type Quota struct {
	// Bucket is the counter charged by the processing endpoints.
	// Env: QUOTA_BUCKET
	Bucket string `env:"BUCKET"`

	// Ceiling is the maximum number of successful charges per user per UTC day.
	// Env: QUOTA_CEILING
	Ceiling int64 `env:"CEILING"`

	// MaxRetries bounds the number of re-executions of a charge transaction
	// after a store conflict.
	// Env: QUOTA_MAX_RETRIES
	MaxRetries uint64 `env:"MAX_RETRIES"`

	// RetryBaseDelay is the first backoff delay between conflicting attempts.
	// Env: QUOTA_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// MaxUploadBytes caps the size of an uploaded request body.
	// Env: SERVER_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"`

	// RateLimitRPS is the per-client-IP request rate; zero disables the limiter.
	// Env: SERVER_RATE_LIMIT_RPS
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS"`

	// RateLimitBurst is the token bucket size of the per-client-IP limiter.
	// Env: SERVER_RATE_LIMIT_BURST
	RateLimitBurst int `env:"RATE_LIMIT_BURST"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites these headers.
	// Env: SERVER_TRUST_PROXY_HEADERS
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS"`
}

// Capabilities configures the external processing collaborators.
type Capabilities struct {
	// RembgURL is the base URL of the background removal service.
	// Env: CAPABILITIES_REMBG_URL
	RembgURL string `env:"REMBG_URL"`

	// RembgTimeout bounds a single background removal call.
	// Env: CAPABILITIES_REMBG_TIMEOUT
	RembgTimeout time.Duration `env:"REMBG_TIMEOUT"`

	// UpscalerEngine is "remote" (inference runtime serving the model artifact,
	// the production setting) or "resample" (in-process Catmull-Rom resize
	// that needs no model; the zero-configuration default).
	// Env: CAPABILITIES_UPSCALER_ENGINE
	UpscalerEngine string `env:"UPSCALER_ENGINE"`

	// UpscalerURL is the base URL of the remote inference runtime.
	// Env: CAPABILITIES_UPSCALER_URL
	UpscalerURL string `env:"UPSCALER_URL"`

	// UpscalerTimeout bounds a single remote upsample call.
	// Env: CAPABILITIES_UPSCALER_TIMEOUT
	UpscalerTimeout time.Duration `env:"UPSCALER_TIMEOUT"`

	// ModelURL is where the super-resolution model artifact is downloaded from.
	// Env: CAPABILITIES_MODEL_URL
	ModelURL string `env:"MODEL_URL"`

	// ModelPath is the local cache location of the model artifact.
	// Env: CAPABILITIES_MODEL_PATH
	ModelPath string `env:"MODEL_PATH"`

	// ModelSHA256 optionally pins the hex SHA-256 digest of the artifact.
	// Env: CAPABILITIES_MODEL_SHA256
	ModelSHA256 string `env:"MODEL_SHA256"`

	// ModelName identifies the network to the inference runtime (e.g. "edsr").
	// Env: CAPABILITIES_MODEL_NAME
	ModelName string `env:"MODEL_NAME"`

	// UpscaleMaxSide is the size guard: images with a side above it are
	// returned unchanged.
	// Env: CAPABILITIES_UPSCALE_MAX_SIDE
	UpscaleMaxSide int `env:"UPSCALE_MAX_SIDE"`
}

// GetStructuredConfig loads, merges, defaults and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withFile().
		build()
}
