package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances for performance
	pathExtractionPatterns = []*regexp.Regexp{
		// Diagnostics quote the path: "cannot access 'dir/file': ..."
		regexp.MustCompile(`'([^']+)'`),
		// Go error formats: "lstat /path/to/file: ..."
		regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
	}
)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich takes an error and enriches it with category and actionable suggestions.
// If the error is already an ActionableError, it is returned unchanged.
// A *ListError supplies its own path, and its kind decides the category
// when the kind alone is conclusive.
// If affectedPath is still empty, attempts to extract a path from the error message.
func (e *enricher) Enrich(err error, affectedPath string) error {
	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()
	category := CategoryUnknown

	var listErr *ListError
	if errors.As(err, &listErr) {
		if affectedPath == "" {
			affectedPath = listErr.Path
		}

		category = categoryForKind(listErr.Kind)
	}

	if affectedPath == "" {
		affectedPath = extractPath(errMsg)
	}

	if category == CategoryUnknown {
		category = e.matcher.Match(errMsg)
	}

	return NewActionableError(
		errMsg,
		category,
		e.generator.Generate(category, affectedPath),
		affectedPath,
	)
}

// categoryForKind maps kinds whose category does not depend on the cause.
func categoryForKind(kind Kind) ErrorCategory {
	switch kind {
	case KindAlreadyListed:
		return CategoryLoop
	case KindPathEncoding:
		return CategoryEncoding
	case KindOpenDirectory, KindReadDirectory, KindAccess, KindReadLink, KindDeviceInode:
		return CategoryUnknown
	default:
		return CategoryUnknown
	}
}

// extractPath attempts to extract a file path from an error message.
// Returns empty string if no path is found.
//
// This function recognizes the listing's own diagnostics as well as standard
// Go error formats like:
//   - "cannot access 'dir/file': Permission denied"
//   - "lstat /var/log/app.log: no such file or directory"
func extractPath(errorMsg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			path := strings.TrimSpace(matches[1])
			if path != "" {
				return path
			}
		}
	}

	return ""
}
