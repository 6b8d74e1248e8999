package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/socconsole/internal/flagx"
	"github.com/dmitrijs2005/socconsole/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields let a
// file override only what it mentions.
type JsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	StoragePath          *string         `json:"storage_path"`
	QueryStaleTime       *timex.Duration `json:"query_stale_time"`
	LogLevel             *string         `json:"log_level"`
	MetricsAddr          *string         `json:"metrics_addr"`
	LogoutOnUnauthorized *bool           `json:"logout_on_unauthorized"`
}

// parseJson overlays cfg with the file named by -c/-config. A file that
// cannot be read or decoded is an error; the console must not fall back to
// a default API.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.QueryStaleTime != nil {
		cfg.QueryStaleTime = jc.QueryStaleTime.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
	if jc.LogoutOnUnauthorized != nil {
		cfg.LogoutOnUnauthorized = *jc.LogoutOnUnauthorized
	}
	return nil
}
