package config

import (
	"os"
	"time"
)

// Config holds runtime settings of the console.
type Config struct {
	// APIBaseURL is prepended to every /api path.
	APIBaseURL string
	// RequestTimeout bounds each outbound API call.
	RequestTimeout time.Duration
	// StoragePath is the SQLite file holding the persisted session.
	StoragePath string
	// QueryStaleTime is how long fetched view data is served from cache.
	// Zero refetches on every open.
	QueryStaleTime time.Duration
	LogLevel       string
	// MetricsAddr enables a Prometheus endpoint when non-empty.
	MetricsAddr string
	// LogoutOnUnauthorized ends the session when the API rejects the token.
	// Off by default: the session is only ever cleared by an explicit logout.
	LogoutOnUnauthorized bool
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000"
	c.RequestTimeout = 30 * time.Second
	c.StoragePath = "console.db"
	c.QueryStaleTime = 0
	c.LogLevel = "info"
	c.MetricsAddr = ""
	c.LogoutOnUnauthorized = false
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and finally the command line.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}
