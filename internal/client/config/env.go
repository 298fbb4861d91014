package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first when present; absence is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("KARTLI_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("KARTLI_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if d, ok := envDuration("KARTLI_REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = d
	}
	if d, ok := envDuration("KARTLI_GAME_POLL_INTERVAL"); ok {
		cfg.GamePollInterval = d
	}
	if d, ok := envDuration("KARTLI_NOTIFICATION_POLL_INTERVAL"); ok {
		cfg.NotificationPollInterval = d
	}
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
