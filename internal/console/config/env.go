package config

import (
	"fmt"

	"github.com/dmitrijs2005/socconsole/internal/flagx"
)

// parseEnv overlays cfg with SOC_* environment variables. A malformed
// duration or boolean is an error naming the variable.
func parseEnv(cfg *Config) error {
	flagx.EnvString(&cfg.APIBaseURL, "SOC_API_BASE_URL")
	flagx.EnvString(&cfg.StoragePath, "SOC_STORAGE_PATH")
	flagx.EnvString(&cfg.LogLevel, "SOC_LOG_LEVEL")
	flagx.EnvString(&cfg.MetricsAddr, "SOC_METRICS_ADDR")

	if err := flagx.EnvDuration(&cfg.RequestTimeout, "SOC_REQUEST_TIMEOUT"); err != nil {
		return fmt.Errorf("SOC_REQUEST_TIMEOUT: %w", err)
	}
	if err := flagx.EnvDuration(&cfg.QueryStaleTime, "SOC_QUERY_STALE_TIME"); err != nil {
		return fmt.Errorf("SOC_QUERY_STALE_TIME: %w", err)
	}
	if err := flagx.EnvBool(&cfg.LogoutOnUnauthorized, "SOC_LOGOUT_ON_UNAUTHORIZED"); err != nil {
		return fmt.Errorf("SOC_LOGOUT_ON_UNAUTHORIZED: %w", err)
	}
	return nil
}
