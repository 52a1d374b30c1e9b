package log4g

import (
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

// InitOptions are the flags recognized by Initialize, matching
// the process's CLI surface. Fields left at their zero value fall back
// to the matching environment variable.
type InitOptions struct {
	ConfigurationFile string
	Flags             string
	MainThreadName    string
	// ValidateDTD mirrors LOG4G_PARSE_DTDVALID. The framework has no DTD
	// validator (encoding/xml does not carry one, and nothing else in the
	// pack provides one for this schema) — setting it only gets a logged
	// warning that the check was requested but can't be performed, rather
	// than being silently ignored.
	ValidateDTD bool
}

// ParseFlags registers and parses --log4g-configuration, --log4g-flags,
// and --log4g-main-thread on fs, returning the parsed values. Pass
// flag.CommandLine to bind to the process's actual argv.
func ParseFlags(fs *flag.FlagSet, args []string) (InitOptions, error) {
	var opts InitOptions
	fs.StringVar(&opts.ConfigurationFile, "log4g-configuration", "", "path to an XML configuration file")
	fs.StringVar(&opts.Flags, "log4g-flags", "", "comma-separated: debug, quiet")
	fs.StringVar(&opts.MainThreadName, "log4g-main-thread", "main", "display name of the main thread")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// resolveOptions fills any unset field from its environment variable
// fallback.
func resolveOptions(opts InitOptions) InitOptions {
	if opts.ConfigurationFile == "" {
		opts.ConfigurationFile = os.Getenv("LOG4G_CONFIGURATION")
	}
	if opts.Flags == "" {
		opts.Flags = os.Getenv("LOG4G_FLAGS")
	}
	if _, set := os.LookupEnv("LOG4G_DEBUG"); set && opts.Flags == "" {
		opts.Flags = "debug"
	}
	if opts.MainThreadName == "" {
		opts.MainThreadName = "main"
	}
	if !opts.ValidateDTD {
		if raw, set := os.LookupEnv("LOG4G_PARSE_DTDVALID"); set {
			opts.ValidateDTD, _ = coerceBool(raw)
		}
	}
	return opts
}

func hasFlag(flags, name string) bool {
	for _, f := range strings.Split(flags, ",") {
		if strings.EqualFold(strings.TrimSpace(f), name) {
			return true
		}
	}
	return false
}

// Initialize is the framework's best-effort startup entry point: it
// resolves flags/env vars, attempts to load the configured XML file,
// and falls back to BasicConfigurator on any failure — a configuration
// problem is never fatal to the calling program. It returns the error
// encountered loading the configuration file, if any, purely for the
// caller's own diagnostics; Initialize has already recovered from it.
func Initialize(opts InitOptions) error {
	opts = resolveOptions(opts)

	if hasFlag(opts.Flags, "quiet") {
		SetInternalLogger(zap.NewNop())
	}

	SetThreadName(opts.MainThreadName)

	if opts.ConfigurationFile == "" {
		BasicConfigurator()
		return nil
	}

	cfg := NewXMLConfigurator()
	if opts.ValidateDTD {
		internalWarn("LOG4G_PARSE_DTDVALID is set but this build has no DTD validator; configuration is parsed without a schema check")
	}
	if err := cfg.ConfigureFile(opts.ConfigurationFile); err != nil {
		internalWarn("failed to load configuration %s, falling back to basic configurator: %v", opts.ConfigurationFile, err)
		BasicConfigurator()
		return err
	}
	return nil
}
