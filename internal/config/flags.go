package config

import (
	"flag"
	"io"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   path of the SQLite database file
//	-i int      alarm check interval in seconds
//	-l string   log level
//
// args are filtered with flagx.FilterArgs first so the config file flag and
// anything else on the command line does not trip the FlagSet.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-i", "-l"})

	fs := flag.NewFlagSet("prodigy", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	interval := fs.Int("i", int(cfg.AlarmCheckInterval.Seconds()), "alarm check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AlarmCheckInterval = time.Duration(*interval) * time.Second
}
