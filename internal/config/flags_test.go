package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "only port",
			addr:     NetAddress{Port: 8000},
			expected: ":8000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests host:port parsing and validation.
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8000", want: NetAddress{Host: "localhost", Port: 8000}},
		{name: "ipv4", input: "0.0.0.0:8000", want: NetAddress{Host: "0.0.0.0", Port: 8000}},
		{name: "empty host", input: ":8000", want: NetAddress{Port: 8000}},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "port not a number", input: "localhost:http", wantErr: true},
		{name: "port out of range", input: "localhost:70000", wantErr: true},
		{name: "port zero", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not-an-ip:8000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestNetAddress_Type(t *testing.T) {
	assert.Equal(t, "host:port", (&NetAddress{}).Type())
}

func TestParseFlags_AllFlags(t *testing.T) {
	args := []string{
		"-a", "127.0.0.1:9000",
		"-d", "file:ledger.db?_txlock=immediate",
		"-c", "/etc/gateway.yaml",
		"--log-level", "debug",
		"--ledger-backend", "sqlite",
		"--redis-address", "localhost:6379",
		"--identity-provider", "hmac",
		"--firebase-project-id", "demo",
		"--token-sign-key", "secret",
		"--token-issuer", "issuer",
		"--quota-ceiling", "10",
		"--request-timeout", "45s",
		"--rembg-url", "http://rembg:7000",
		"--upscaler-engine", "remote",
		"--upscaler-url", "http://infer:9000",
		"--model-url", "http://models/edsr.pb",
		"--model-path", "/tmp/edsr.pb",
	}

	cfg, err := parseFlags(args)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "file:ledger.db?_txlock=immediate", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite", cfg.Storage.LedgerBackend)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, "/etc/gateway.yaml", cfg.FilePath)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "hmac", cfg.App.IdentityProvider)
	assert.Equal(t, "demo", cfg.App.FirebaseProjectID)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, int64(10), cfg.Quota.Ceiling)
	assert.Equal(t, "http://rembg:7000", cfg.Capabilities.RembgURL)
	assert.Equal(t, "remote", cfg.Capabilities.UpscalerEngine)
	assert.Equal(t, "http://infer:9000", cfg.Capabilities.UpscalerURL)
	assert.Equal(t, "http://models/edsr.pb", cfg.Capabilities.ModelURL)
	assert.Equal(t, "/tmp/edsr.pb", cfg.Capabilities.ModelPath)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--no-such-flag"}},
		{name: "bad address", args: []string{"-a", "nonsense"}},
		{name: "bad ceiling", args: []string{"--quota-ceiling", "many"}},
		{name: "bad timeout", args: []string{"--request-timeout", "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "error parsing flags")
		})
	}
}
