package config

import (
	"encoding/json"
	"os"

	"github.com/kartli/kartli-client/internal/flagx"
	"github.com/kartli/kartli-client/internal/timex"
)

// jsonConfig is the DTO used exclusively for JSON unmarshalling. Durations
// accept either "2s"-style strings or integer nanoseconds via timex.
type jsonConfig struct {
	ServerURL                string          `json:"server_url"`
	DatabasePath             string          `json:"database_path"`
	RequestTimeout           *timex.Duration `json:"request_timeout"`
	GamePollInterval         *timex.Duration `json:"game_poll_interval"`
	NotificationPollInterval *timex.Duration `json:"notification_poll_interval"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// No flag, no file, no overlay. Read or parse failures panic: a config file
// that exists but cannot be used is a startup error, not something to limp
// past.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.GamePollInterval != nil {
		cfg.GamePollInterval = jc.GamePollInterval.Duration
	}
	if jc.NotificationPollInterval != nil {
		cfg.NotificationPollInterval = jc.NotificationPollInterval.Duration
	}
}
