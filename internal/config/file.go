package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for JSON and YAML configuration files.
type fileConfig struct {
	App struct {
		LogLevel             string   `json:"log_level" yaml:"log_level"`
		IdentityProvider     string   `json:"identity_provider" yaml:"identity_provider"`
		FirebaseProjectID    string   `json:"firebase_project_id" yaml:"firebase_project_id"`
		FirebaseCertsURL     string   `json:"firebase_certs_url" yaml:"firebase_certs_url"`
		CertsRefreshInterval Duration `json:"certs_refresh_interval" yaml:"certs_refresh_interval"`
		TokenSignKey         string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer" yaml:"token_issuer"`
	} `json:"app" yaml:"app"`

	Storage struct {
		LedgerBackend string `json:"ledger_backend" yaml:"ledger_backend"`
		DB            struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Redis struct {
			Address   string   `json:"address" yaml:"address"`
			Password  string   `json:"password" yaml:"password"`
			DB        int      `json:"db" yaml:"db"`
			KeyPrefix string   `json:"key_prefix" yaml:"key_prefix"`
			Retention Duration `json:"retention" yaml:"retention"`
		} `json:"redis" yaml:"redis"`
	} `json:"storage" yaml:"storage"`

	Quota struct {
		Bucket         string   `json:"bucket" yaml:"bucket"`
		Ceiling        int64    `json:"ceiling" yaml:"ceiling"`
		MaxRetries     uint64   `json:"max_retries" yaml:"max_retries"`
		RetryBaseDelay Duration `json:"retry_base_delay" yaml:"retry_base_delay"`
	} `json:"quota" yaml:"quota"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
		MaxUploadBytes  int64    `json:"max_upload_bytes" yaml:"max_upload_bytes"`
		RateLimitRPS    float64  `json:"rate_limit_rps" yaml:"rate_limit_rps"`
		RateLimitBurst  int      `json:"rate_limit_burst" yaml:"rate_limit_burst"`
		TrustProxy      bool     `json:"trust_proxy_headers" yaml:"trust_proxy_headers"`
	} `json:"server" yaml:"server"`

	Capabilities struct {
		RembgURL        string   `json:"rembg_url" yaml:"rembg_url"`
		RembgTimeout    Duration `json:"rembg_timeout" yaml:"rembg_timeout"`
		UpscalerEngine  string   `json:"upscaler_engine" yaml:"upscaler_engine"`
		UpscalerURL     string   `json:"upscaler_url" yaml:"upscaler_url"`
		UpscalerTimeout Duration `json:"upscaler_timeout" yaml:"upscaler_timeout"`
		ModelURL        string   `json:"model_url" yaml:"model_url"`
		ModelPath       string   `json:"model_path" yaml:"model_path"`
		ModelSHA256     string   `json:"model_sha256" yaml:"model_sha256"`
		ModelName       string   `json:"model_name" yaml:"model_name"`
		UpscaleMaxSide  int      `json:"upscale_max_side" yaml:"upscale_max_side"`
	} `json:"capabilities" yaml:"capabilities"`
}

// parseFile reads a configuration file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:             fc.App.LogLevel,
			IdentityProvider:     fc.App.IdentityProvider,
			FirebaseProjectID:    fc.App.FirebaseProjectID,
			FirebaseCertsURL:     fc.App.FirebaseCertsURL,
			CertsRefreshInterval: time.Duration(fc.App.CertsRefreshInterval),
			TokenSignKey:         fc.App.TokenSignKey,
			TokenIssuer:          fc.App.TokenIssuer,
		},
		Storage: Storage{
			LedgerBackend: fc.Storage.LedgerBackend,
			DB: DB{
				DSN: fc.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:   fc.Storage.Redis.Address,
				Password:  fc.Storage.Redis.Password,
				DB:        fc.Storage.Redis.DB,
				KeyPrefix: fc.Storage.Redis.KeyPrefix,
				Retention: time.Duration(fc.Storage.Redis.Retention),
			},
		},
		Quota: Quota{
			Bucket:         fc.Quota.Bucket,
			Ceiling:        fc.Quota.Ceiling,
			MaxRetries:     fc.Quota.MaxRetries,
			RetryBaseDelay: time.Duration(fc.Quota.RetryBaseDelay),
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
			MaxUploadBytes:  fc.Server.MaxUploadBytes,
			RateLimitRPS:    fc.Server.RateLimitRPS,
			RateLimitBurst:  fc.Server.RateLimitBurst,

			TrustProxyHeaders: fc.Server.TrustProxy,
		},
		Capabilities: Capabilities{
			RembgURL:        fc.Capabilities.RembgURL,
			RembgTimeout:    time.Duration(fc.Capabilities.RembgTimeout),
			UpscalerEngine:  fc.Capabilities.UpscalerEngine,
			UpscalerURL:     fc.Capabilities.UpscalerURL,
			UpscalerTimeout: time.Duration(fc.Capabilities.UpscalerTimeout),
			ModelURL:        fc.Capabilities.ModelURL,
			ModelPath:       fc.Capabilities.ModelPath,
			ModelSHA256:     fc.Capabilities.ModelSHA256,
			ModelName:       fc.Capabilities.ModelName,
			UpscaleMaxSide:  fc.Capabilities.UpscaleMaxSide,
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling from
// strings like "1h", "30s" in both JSON and YAML, and from plain numbers
// (nanoseconds).
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return d.set(v)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var v any
	if err := value.Decode(&v); err != nil {
		return err
	}

	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case nil:
		*d = 0
	case float64:
		*d = Duration(time.Duration(value))
	case int:
		*d = Duration(time.Duration(value))
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
	default:
		return fmt.Errorf("invalid duration %v", v)
	}

	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
