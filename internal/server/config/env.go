package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays values from environment variables onto the Config using
// the `env` struct tags. Unset variables leave the current values untouched,
// so the overlay composes with defaults and the JSON file. The process
// environment is read exactly once here rather than ad hoc throughout the
// codebase.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
