package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDatabasePath       = "PRODIGY_DB"
	EnvAlarmCheckInterval = "PRODIGY_ALARM_INTERVAL"
	EnvLogLevel           = "PRODIGY_LOG_LEVEL"
	EnvLogFormat          = "PRODIGY_LOG_FORMAT"
	EnvBackupDir          = "PRODIGY_BACKUP_DIR"
)

// parseEnv overlays cfg with PRODIGY_* environment variables. A .env file in
// the working directory is loaded first when present; variables already set
// in the process environment win over it. Empty variables are ignored.
//
// Panics if PRODIGY_ALARM_INTERVAL is not a valid duration.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := getenv(EnvAlarmCheckInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvAlarmCheckInterval, err))
		}
		cfg.AlarmCheckInterval = d
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := getenv(EnvBackupDir); v != "" {
		cfg.BackupDir = v
	}
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
