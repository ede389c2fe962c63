package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		order: []ErrorCategory{
			CategoryRemote,
			CategoryPermission,
			CategoryLoop,
			CategoryPath,
			CategoryEncoding,
			CategoryIO,
		},
		patterns: map[ErrorCategory][]string{
			CategoryRemote: {
				"ssh_fx_",
				"connection lost",
				"ssh: ",
			},
			CategoryPermission: {
				"permission denied",
				"access denied",
				"operation not permitted",
			},
			CategoryLoop: {
				"too many levels of symbolic links",
				"already-listed directory",
			},
			CategoryPath: {
				"no such file or directory",
				"file does not exist",
				"not a directory",
			},
			CategoryEncoding: {
				"invalid utf-8",
			},
			CategoryIO: {
				"input/output error",
				"i/o error",
				"stale file handle",
			},
		},
	}
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	order    []ErrorCategory
	patterns map[ErrorCategory][]string
}

// Match returns the error category based on pattern matching.
// Categories are tried in a fixed order so a remote permission failure is
// reported as remote.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, category := range m.order {
		for _, pattern := range m.patterns[category] {
			if strings.Contains(lowerMsg, pattern) {
				return category
			}
		}
	}

	return CategoryUnknown
}
