// Package config assembles the client's runtime settings from layered
// sources: built-in defaults, an optional JSON file (-c/-config), the
// environment (including a .env file) and command-line flags. Later
// sources win.
package config

import "time"

// Config holds runtime settings for the client.
type Config struct {
	// ServerURL is the base URL of the game API.
	ServerURL string
	// DatabasePath is the local SQLite file holding session state.
	DatabasePath string
	// RequestTimeout bounds every single API call.
	RequestTimeout time.Duration
	// GamePollInterval is the fixed cadence of the game screen poll.
	GamePollInterval time.Duration
	// NotificationPollInterval is the fixed cadence of the badge poll.
	NotificationPollInterval time.Duration
}

// LoadDefaults populates c with the stock settings.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DatabasePath = "kartli.db"
	c.RequestTimeout = 10 * time.Second
	c.GamePollInterval = 2 * time.Second
	c.NotificationPollInterval = 30 * time.Second
}

// LoadConfig builds the Config: defaults, then JSON file, then environment,
// then flags, each layer overriding the previous one.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
