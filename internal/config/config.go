package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// SampleDBPath overrides the local health-export sqlite database
	// location; empty means the default under the config directory.
	SampleDBPath string `env:"PULSE_SAMPLE_DB"`
	// SnapshotDBPath overrides the daily-snapshot sqlite database location.
	SnapshotDBPath string `env:"PULSE_SNAPSHOT_DB"`

	// RedisURL enables the redis baseline cache when set.
	RedisURL string `env:"PULSE_REDIS_URL"`
	// PostgresURL enables the postgres snapshot store when set.
	PostgresURL string `env:"PULSE_POSTGRES_URL"`

	DebounceWindow   time.Duration `env:"PULSE_DEBOUNCE_WINDOW" envDefault:"1s"`
	BaselineCacheTTL time.Duration `env:"PULSE_BASELINE_CACHE_TTL" envDefault:"24h"`
	RefreshInterval  time.Duration `env:"PULSE_REFRESH_INTERVAL" envDefault:"5m"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
