// Package config resolves runtime configuration from the environment.
// A .env file is honored when present so local development does not need
// exported variables.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime knobs for bzx. Everything has a default; only
// the endpoint is expected to change outside of tests.
type Config struct {
	Endpoint        string        `envconfig:"BZX_ENDPOINT" default:"https://api.hypixel.net/v2/skyblock/bazaar"`
	HTTPTimeout     time.Duration `envconfig:"BZX_HTTP_TIMEOUT" default:"10s"`
	RefreshInterval time.Duration `envconfig:"BZX_REFRESH_INTERVAL" default:"3s"`
	TickInterval    time.Duration `envconfig:"BZX_TICK_INTERVAL" default:"60ms"`
	DebounceWindow  time.Duration `envconfig:"BZX_DEBOUNCE_WINDOW" default:"120ms"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; production deployments set real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
