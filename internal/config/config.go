// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/list-files/pkg/filesystem"
)

// ColorMode controls when entry names are colored
type ColorMode int

const (
	// ColorAuto - color when standard output is a terminal
	ColorAuto ColorMode = iota
	// ColorAlways - always emit color sequences
	ColorAlways
	// ColorNever - never emit color sequences
	ColorNever
)

// String returns the string representation of ColorMode
func (cm ColorMode) String() string {
	switch cm {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	s = strings.ToLower(s)
	switch s {
	case "auto", "tty", "if-tty":
		return ColorAuto, nil
	case "always", "yes", "force":
		return ColorAlways, nil
	case "never", "no", "none":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (cm *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*cm = parsed
	return nil
}

// Config holds the application configuration
type Config struct {
	Paths       []string  `arg:"positional" placeholder:"FILE" help:"Paths to list (default: .); sftp://user@host[:port]/path lists a remote tree"`
	All         bool      `arg:"-a,--all" help:"Do not ignore entries starting with ."`
	AlmostAll   bool      `arg:"-A,--almost-all" help:"Do not list implied . and .."`
	Long        bool      `arg:"-l" help:"Use a long listing format"`
	Dereference bool      `arg:"-L,--dereference" help:"Show information for the file a symbolic link references"`
	Recursive   bool      `arg:"-R,--recursive" help:"List subdirectories recursively"`
	Across      bool      `arg:"-x" help:"List entries by lines instead of by columns"`
	Ignore      []string  `arg:"-I,--ignore,separate" placeholder:"PATTERN" help:"Do not list entries matching the glob PATTERN"`
	Hide        []string  `arg:"--hide,separate" placeholder:"PATTERN" help:"Do not list entries matching the glob PATTERN (overridden by -a or -A)"`
	Width       int       `arg:"-w,--width" placeholder:"COLS" help:"Set output width to COLS (0 = detect)"`
	Color       ColorMode `arg:"--color" default:"auto" placeholder:"WHEN" help:"Color entry names: auto|always|never"`
	LogLevel    string    `arg:"--log-level" default:"warn" help:"Diagnostic verbosity: trace|debug|info|warn|error"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "List information about files, locally or over SFTP"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "list-files 1.0.0"
}

// ErrExit is returned by ParseArgs after help or version output was written;
// the caller should exit successfully.
var ErrExit = errors.New("exit requested")

// shortBoolFlags are the single-letter flags that take no value and may be
// combined into one argument.
const shortBoolFlags = "aAlLRx"

// ParseArgs parses command-line arguments (without the program name) and
// returns the configuration. Help and version output go to stdout.
func ParseArgs(args []string, stdout io.Writer) (*Config, error) {
	cfg := &Config{
		Color:    ColorAuto,
		LogLevel: "warn",
	}

	parser, err := arg.NewParser(arg.Config{Program: "list-files"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(ExpandShortFlags(args))
	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)
		return nil, ErrExit
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(stdout, cfg.Version())
		return nil, ErrExit
	case err != nil:
		return nil, err
	}

	return PostProcessConfig(cfg)
}

// ExpandShortFlags splits combined boolean short flags ("-laR") into
// separate arguments. Arguments after "--" and anything containing a
// value-taking flag are left untouched.
func ExpandShortFlags(args []string) []string {
	expanded := make([]string, 0, len(args))

	for i, a := range args {
		if a == "--" {
			return append(expanded, args[i:]...)
		}

		if !isCombinedShortFlags(a) {
			expanded = append(expanded, a)
			continue
		}

		for _, r := range a[1:] {
			expanded = append(expanded, "-"+string(r))
		}
	}

	return expanded
}

func isCombinedShortFlags(a string) bool {
	if len(a) < 3 || a[0] != '-' || a[1] == '-' {
		return false
	}

	for _, r := range a[1:] {
		if !strings.ContainsRune(shortBoolFlags, r) {
			return false
		}
	}

	return true
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks option values that go-arg cannot check on its own
func (cfg *Config) Validate() error {
	if cfg.Width < 0 {
		return fmt.Errorf("invalid line width: %d", cfg.Width)
	}

	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error)", cfg.LogLevel)
	}

	for _, pattern := range append(append([]string{}, cfg.Ignore...), cfg.Hide...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid pattern: %s", pattern)
		}
	}

	return cfg.ValidatePaths()
}

// ValidatePaths checks that every SFTP URL among the paths is well formed.
// Local paths are not checked here; a missing local path is a listing
// failure, not a usage error.
func (cfg *Config) ValidatePaths() error {
	for _, p := range cfg.Paths {
		if p == "" {
			return errors.New("empty path")
		}

		if _, err := filesystem.ParsePath(p); err != nil {
			return fmt.Errorf("invalid path %s: %w", p, err)
		}
	}

	return nil
}
