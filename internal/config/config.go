package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the prodigy CLI.
//
// Fields:
//   - DatabasePath: SQLite file backing the key-value store; ":memory:" keeps
//     everything in RAM for the lifetime of the process.
//   - AlarmCheckInterval: how often alarms and reminders are compared with
//     the clock.
//   - LogLevel, LogFormat: passed to logging.New.
//   - BackupDir: directory (relative to the working directory unless
//     absolute) where export files are written.
type Config struct {
	DatabasePath       string
	AlarmCheckInterval time.Duration
	LogLevel           string
	LogFormat          string
	BackupDir          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "prodigy.db"
	c.AlarmCheckInterval = time.Minute
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BackupDir = "backups"
}

// LoadConfig constructs a Config from defaults, the environment, an optional
// config file and command-line flags, in that order. Later sources take
// precedence over earlier ones. It panics on malformed input, which is only
// ever reached at program start.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig with explicit arguments.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
