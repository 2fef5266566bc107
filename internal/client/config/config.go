package config

import "time"

// Config holds runtime settings for the srsp CLI.
//
// Fields:
//   - BaseURL: root URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local sqlite file keeping session state.
//
// Units: RequestTimeout is a time.Duration (e.g., 15*time.Second).
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:3001"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "srsp.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
