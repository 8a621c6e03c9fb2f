package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the environment layer. Variable names come from the `env`
// and `envPrefix` tags of [StructuredConfig]; unset variables leave their
// fields zero so the layer merges cleanly over the others.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	return &cfg, nil
}
