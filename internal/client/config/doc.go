// Package config loads runtime configuration for the bcard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with BCARD_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the business-card API
//	-d string   path of the local SQLite session file
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example/bcard2",
//	  "storage_path": "bcard.db",
//	  "online_check_interval": "10s",
//	  "request_timeout": "5s",
//	  "card_cache_ttl": "5m",
//	  "page_size": 6,
//	  "requests_per_second": 5,
//	  "request_burst": 10,
//	  "log_level": "debug"
//	}
//
// Fields absent from the JSON document keep their previous value.
package config
