// Package errors provides the failure taxonomy of a directory listing and
// actionable diagnostics for it.
//
// Every failure a listing can hit is a *ListError carrying a Kind, the path
// involved and the underlying cause. Failures are recoverable: each one is
// reported and folded into a monotone ExitStatus, and the listing goes on.
//
// Basic Usage:
//
//	status := errors.Success
//	err := errors.New(errors.KindAccess, "dir/file", cause)
//	status = status.Raise(errors.SeverityFor(false))
//	fmt.Fprintln(os.Stderr, err)
//
// The enricher categorizes a failure and attaches suggestions that a
// verbose run can print after the diagnostic:
//
//	enricher := errors.NewEnricher()
//	actionable := enricher.Enrich(err, "")
//	fmt.Println(errors.FormatSuggestions(actionable))
package errors

import "strings"

// Exported constants.
const (
	CategoryEncoding   ErrorCategory = "encoding"
	CategoryIO         ErrorCategory = "io"
	CategoryLoop       ErrorCategory = "loop"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryRemote     ErrorCategory = "remote"
	CategoryUnknown    ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted list
// for display under a diagnostic. Returns empty string if the error is nil or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	actionable, ok := err.(ActionableError)
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
}

// AffectedPath returns the file path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}
