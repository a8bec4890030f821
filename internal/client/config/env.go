package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with BCARD_* environment variables. Unset
// variables leave the field untouched. A malformed value panics, matching
// the JSON and flag loaders.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
