// Package config loads runtime configuration for the SOC console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// Supported flags
//
//	-a string   base URL of the SOC REST API
//	-t int      request timeout (seconds)
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//	-m string   address to expose Prometheus metrics on (empty = off)
//
// Environment
//
//	SOC_API_BASE_URL, SOC_REQUEST_TIMEOUT, SOC_STORAGE_PATH, SOC_LOG_LEVEL,
//	SOC_METRICS_ADDR, SOC_QUERY_STALE_TIME, SOC_LOGOUT_ON_UNAUTHORIZED
//
// # JSON schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:4000",
//	  "request_timeout": "30s",
//	  "storage_path": "console.db",
//	  "query_stale_time": "0s",
//	  "log_level": "info",
//	  "metrics_addr": "",
//	  "logout_on_unauthorized": false
//	}
package config
