// Package config loads runtime configuration for the prodigy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after an optional .env file in the working
//     directory has been loaded with godotenv (see parseEnv).
//  3. Optional config file selected via -c or -config (see parseFile). Files
//     ending in .yaml or .yml are read as YAML, anything else as JSON.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Environment
//
//	PRODIGY_DB               path of the SQLite database file
//	PRODIGY_ALARM_INTERVAL   alarm check interval (Go duration, e.g. "1m")
//	PRODIGY_LOG_LEVEL        debug | info | warn | error
//	PRODIGY_LOG_FORMAT       text | json
//	PRODIGY_BACKUP_DIR       directory for export files
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-i int      alarm check interval (seconds)
//	-l string   log level
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "1m" or integer
// nanoseconds:
//
//	{
//	  "database_path": "prodigy.db",
//	  "alarm_check_interval": "1m",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "backup_dir": "backups"
//	}
//
// The YAML form uses the same keys.
package config
