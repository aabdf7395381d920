package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/nanatgrail/prodigyspace/internal/flagx"
	"github.com/nanatgrail/prodigyspace/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file unmarshalling.
// It relies on timex.Duration so intervals can be written as "1m" or as
// integer nanoseconds. Zero values leave the runtime Config untouched.
type FileConfig struct {
	DatabasePath       string         `json:"database_path" yaml:"database_path"`
	AlarmCheckInterval timex.Duration `json:"alarm_check_interval" yaml:"alarm_check_interval"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
	LogFormat          string         `json:"log_format" yaml:"log_format"`
	BackupDir          string         `json:"backup_dir" yaml:"backup_dir"`
}

// parseFile overlays cfg with values loaded from the file named by -c or
// -config. Without either flag it does nothing.
//
// Panics on read or unmarshal errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.AlarmCheckInterval.Duration > 0 {
		cfg.AlarmCheckInterval = fc.AlarmCheckInterval.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.BackupDir != "" {
		cfg.BackupDir = fc.BackupDir
	}
}
