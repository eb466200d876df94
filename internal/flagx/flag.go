// Package flagx holds helpers for components that each parse their own
// subset of the process command line.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the arguments that belong to the given flags, so a
// flag.FlagSet that knows nothing about the rest of the command line can
// parse the result.
//
// Names are compared without leading dashes, so "-c" in the list also
// admits "--c". Value flags take their value either as "-f=value" or as the
// next argument, unless that argument starts with a dash. Bool flags never
// consume the next argument; use "-f=false" to switch one off.
func FilterArgs(args []string, valueFlags []string, boolFlags ...string) []string {
	kinds := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		kinds[flagName(f)] = true
	}
	for _, f := range boolFlags {
		kinds[flagName(f)] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		takesValue, ok := kinds[flagName(name)]
		if !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue || !takesValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// ConfigFileFlag returns the config file path given with -c or -config, or
// "" when neither is present. The file may be JSON or TOML; the caller
// decides by extension.
func ConfigFileFlag() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
