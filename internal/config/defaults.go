package config

import "time"

// Default values applied to every field left empty by all configuration sources.
const (
	DefaultHTTPAddress      = "0.0.0.0:8000"
	DefaultFirebaseCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	DefaultModelURL         = "https://github.com/Saafke/EDSR_Tensorflow/raw/master/models/EDSR_x4.pb"
	DefaultModelPath        = "EDSR_x4.pb"
	DefaultBucket           = "cheap_count"
	DefaultCeiling          = 50
	DefaultUpscaleMaxSide   = 1200
)

// Supported values of the enumerated settings.
const (
	IdentityProviderFirebase = "firebase"
	IdentityProviderHMAC     = "hmac"

	LedgerBackendPostgres = "postgres"
	LedgerBackendSQLite   = "sqlite"
	LedgerBackendRedis    = "redis"
	LedgerBackendMemory   = "memory"

	UpscalerEngineResample = "resample"
	UpscalerEngineRemote   = "remote"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:             "info",
			IdentityProvider:     IdentityProviderFirebase,
			FirebaseCertsURL:     DefaultFirebaseCertsURL,
			CertsRefreshInterval: time.Hour,
		},
		Storage: Storage{
			LedgerBackend: LedgerBackendMemory,
		},
		Quota: Quota{
			Bucket:         DefaultBucket,
			Ceiling:        DefaultCeiling,
			MaxRetries:     5,
			RetryBaseDelay: 10 * time.Millisecond,
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  20 << 20,
			RateLimitBurst:  10,
		},
		Capabilities: Capabilities{
			RembgURL:        "http://localhost:7000",
			RembgTimeout:    time.Minute,
			UpscalerEngine:  UpscalerEngineResample,
			UpscalerTimeout: 2 * time.Minute,
			ModelURL:        DefaultModelURL,
			ModelPath:       DefaultModelPath,
			ModelName:       "edsr",
			UpscaleMaxSide:  DefaultUpscaleMaxSide,
		},
	}
}
