// Package flagx holds command-line helpers shared by the config loader.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// ConfigFileFlags are the flag spellings that select a config file.
var ConfigFileFlags = []string{"-c", "-config", "--config"}

// FilterArgs keeps only the allowed flags (and their values) from args, so a
// FlagSet that knows a subset of the program's flags can parse them without
// failing on the rest.
//
// Two shapes are recognised:
//
//	-d prodigy.db        flag and value as separate arguments
//	--config=conf.yaml   flag and value joined with '='
//
// A flag immediately followed by another dash-prefixed token is kept without
// a value. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigFile extracts the config file path given with -c or -config from
// args (usually os.Args[1:]). The last occurrence wins; an empty string means
// no config file was requested.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "Path to config file (.json, .yaml or .yml)")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlags))

	return path
}
