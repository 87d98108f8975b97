package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// processEnvironment returns the variables of the running process.
func processEnvironment() map[string]string {
	return env.ToMap(os.Environ())
}

// parseEnv builds a [StructuredConfig] from the given variables only, so tests
// never touch the process environment. Variables map to fields through the
// `env` and `envPrefix` tags.
func parseEnv(environment map[string]string) (*StructuredConfig, error) {
	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{
		Environment: environment,
	})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
