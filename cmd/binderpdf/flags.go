package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag parsing.
var (
	ErrMissingInput = errors.New("missing required flag --input")
	ErrQuietVerbose = errors.New("--quiet and --verbose are mutually exclusive")
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	input    string
	output   string
	config   string
	lang     string
	scope    string
	cacheDir string
	quiet    bool
	verbose  bool
	version  bool
}

// parseFlags parses args (including the program name at args[0]).
// Returns the parsed flags and the usage text for error reporting.
func parseFlags(args []string) (*cliFlags, string, error) {
	fs := flag.NewFlagSet("binderpdf", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.input, "input", "i", "", "document YAML file (required)")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: derived from scope and language)")
	fs.StringVarP(&f.config, "config", "c", "", "config file path or name")
	fs.StringVarP(&f.lang, "lang", "l", "en", "target language code")
	fs.StringVar(&f.scope, "scope", "", "scope identifier for the output name (default: document name)")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "artwork cache directory (overrides config)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress progress output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print per-section progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, fs.FlagUsages(), err
	}

	if f.version {
		return f, fs.FlagUsages(), nil
	}
	if f.input == "" {
		return nil, fs.FlagUsages(), ErrMissingInput
	}
	if f.quiet && f.verbose {
		return nil, fs.FlagUsages(), ErrQuietVerbose
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fs.FlagUsages(), fmt.Errorf("unexpected arguments: %v", rest)
	}
	return f, fs.FlagUsages(), nil
}
