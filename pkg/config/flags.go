package config

import (
	"flag"
	"fmt"
)

// ParseFlags parses the daemon's command-line flags: -f/--config PATH,
// -v/--verbose, --help/-?, --version/-V. It never calls os.Exit; callers
// map ErrHelpRequested/ErrVersionRequested to the CLI's own print+exit
// behavior.
func ParseFlags(args []string) (*CLIOptions, error) {
	fs := flag.NewFlagSet("repmgrd", flag.ContinueOnError)
	fs.Usage = func() {} // suppress flag's own usage text; caller prints it

	opts := &CLIOptions{}

	fs.StringVar(&opts.ConfigPath, "f", "", "path to configuration file")
	fs.StringVar(&opts.ConfigPath, "config", "", "path to configuration file")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose logging (DEBUG level)")
	fs.BoolVar(&opts.Verbose, "verbose", false, "verbose logging (DEBUG level)")
	fs.BoolVar(&opts.Help, "help", false, "show usage and exit")
	fs.BoolVar(&opts.Help, "?", false, "show usage and exit")
	fs.BoolVar(&opts.Version, "version", false, "show version and exit")
	fs.BoolVar(&opts.Version, "V", false, "show version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if opts.Help {
		return opts, ErrHelpRequested
	}
	if opts.Version {
		return opts, ErrVersionRequested
	}

	return opts, nil
}

// Merge applies CLI flags on top of a loaded Config: flags win.
func Merge(cfg *Config, opts *CLIOptions) *Config {
	if opts.ConfigPath != "" {
		cfg.ConfigPath = opts.ConfigPath
	}
	if opts.Verbose {
		cfg.LogLevel = "DEBUG"
	}
	return cfg
}
