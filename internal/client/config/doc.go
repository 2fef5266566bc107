// Package config loads runtime configuration for the srsp CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      per-request timeout (seconds)
//	-d string   path of the local state database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:3001",
//	  "request_timeout": "15s",
//	  "database_path": "srsp.db"
//	}
//
// Primary API
//
//   - type Config                     — holds BaseURL, RequestTimeout and DatabasePath
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
