package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a, --address              server address in format [host]:[port]
//	-d, --database-dsn         ledger database DSN
//	-c, --config               JSON or YAML file path with configs
//	    --log-level            log level
//	    --ledger-backend       postgres | sqlite | redis | memory
//	    --redis-address        redis address
//	    --identity-provider    firebase | hmac
//	    --firebase-project-id  Firebase project id
//	    --token-sign-key       HS256 token signing key
//	    --token-issuer         token issuer name
//	    --quota-ceiling        daily ceiling per user
//	    --request-timeout      request timeout (e.g., "30s", "1m")
//	    --rembg-url            background removal service URL
//	    --upscaler-engine      resample | remote
//	    --upscaler-url         remote inference runtime URL
//	    --model-url            model artifact download URL
//	    --model-path           model artifact cache path
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, filePath, logLevel string
	var ledgerBackend, redisAddress string
	var identityProvider, firebaseProjectID, tokenSignKey, tokenIssuer string
	var quotaCeiling int64
	var requestTimeout time.Duration
	var rembgURL, upscalerEngine, upscalerURL, modelURL, modelPath string

	fs := pflag.NewFlagSet("image-gateway", pflag.ContinueOnError)
	fs.VarP(&serverAddress, "address", "a", "Net address host:port")
	fs.StringVarP(&databaseDSN, "database-dsn", "d", "", "Ledger database DSN")
	fs.StringVarP(&filePath, "config", "c", "", "JSON or YAML config file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&ledgerBackend, "ledger-backend", "", "Ledger backend: postgres, sqlite, redis or memory")
	fs.StringVar(&redisAddress, "redis-address", "", "Redis address host:port")
	fs.StringVar(&identityProvider, "identity-provider", "", "Identity provider: firebase or hmac")
	fs.StringVar(&firebaseProjectID, "firebase-project-id", "", "Firebase project id")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "HS256 token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.Int64Var(&quotaCeiling, "quota-ceiling", 0, "Daily quota ceiling per user")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&rembgURL, "rembg-url", "", "Background removal service URL")
	fs.StringVar(&upscalerEngine, "upscaler-engine", "", "Upscaler engine: resample or remote")
	fs.StringVar(&upscalerURL, "upscaler-url", "", "Remote inference runtime URL")
	fs.StringVar(&modelURL, "model-url", "", "Model artifact download URL")
	fs.StringVar(&modelPath, "model-path", "", "Model artifact cache path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel:          logLevel,
			IdentityProvider:  identityProvider,
			FirebaseProjectID: firebaseProjectID,
			TokenSignKey:      tokenSignKey,
			TokenIssuer:       tokenIssuer,
		},
		Storage: Storage{
			LedgerBackend: ledgerBackend,
			DB: DB{
				DSN: databaseDSN,
			},
			Redis: Redis{
				Address: redisAddress,
			},
		},
		Quota: Quota{
			Ceiling: quotaCeiling,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Capabilities: Capabilities{
			RembgURL:       rembgURL,
			UpscalerEngine: upscalerEngine,
			UpscalerURL:    upscalerURL,
			ModelURL:       modelURL,
			ModelPath:      modelPath,
		},
		FilePath: filePath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
