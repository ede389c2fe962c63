package listing

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreMode decides which dot entries are listed.
type IgnoreMode int

// Exported constants.
const (
	// IgnoreDefault - hide every name starting with "."
	IgnoreDefault IgnoreMode = iota
	// IgnoreDotAndDotDot - hide only "." and ".."
	IgnoreDotAndDotDot
	// IgnoreMinimal - hide nothing
	IgnoreMinimal
)

// IgnoreModeFor maps the show-all flags to a mode. All wins over almost-all.
func IgnoreModeFor(all, almostAll bool) IgnoreMode {
	switch {
	case all:
		return IgnoreMinimal
	case almostAll:
		return IgnoreDotAndDotDot
	default:
		return IgnoreDefault
	}
}

// Filter decides which directory entries are listed
type Filter struct {
	mode   IgnoreMode
	ignore []string
	hide   []string
}

// NewFilter creates a Filter. ignore patterns always apply; hide patterns
// apply only in IgnoreDefault mode. Patterns are doublestar globs matched
// against the entry name.
func NewFilter(mode IgnoreMode, ignore, hide []string) *Filter {
	return &Filter{mode: mode, ignore: ignore, hide: hide}
}

// Mode returns the filter's ignore mode.
func (f *Filter) Mode() IgnoreMode {
	return f.mode
}

// Ignored returns true if the entry called name should not be listed
func (f *Filter) Ignored(name string) bool {
	if f.mode != IgnoreMinimal && strings.HasPrefix(name, ".") &&
		(f.mode == IgnoreDefault || isDotOrDotDot(name)) {
		return true
	}

	if matchAny(f.ignore, name) {
		return true
	}

	return f.mode == IgnoreDefault && matchAny(f.hide, name)
}

// matchAny reports whether name matches one of patterns.
// Invalid patterns match nothing.
func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}
