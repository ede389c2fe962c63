package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryLoop:
		return g.generateLoopSuggestions(affectedPath)
	case CategoryEncoding:
		return g.generateEncodingSuggestions()
	case CategoryRemote:
		return g.generateRemoteSuggestions()
	case CategoryIO:
		return g.generateIOSuggestions()
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateEncodingSuggestions() []string {
	return []string{
		"The name contains bytes that are not valid UTF-8",
		"Rename the entry with a UTF-8 name to list it",
	}
}

func (g *suggestionGenerator) generateIOSuggestions() []string {
	return []string{
		"Try the listing again - this may be a transient I/O error",
		"Check system logs for hardware or network filesystem issues",
	}
}

func (g *suggestionGenerator) generateLoopSuggestions(path string) []string {
	suggestions := []string{
		"A symbolic link points back to one of its own ancestors",
	}

	if path != "" {
		suggestions = append(suggestions, "Inspect the link with 'readlink -f "+path+"'")
	}

	suggestions = append(suggestions, "List without --dereference to show links instead of following them")

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Ensure all parent directories exist for "+path)
		suggestions = append(suggestions, "If "+path+" is a symbolic link, its target may be missing")
	} else {
		suggestions = append(suggestions, "Ensure all parent directories exist")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Listing a directory needs read and execute permission on it",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'stat %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'stat' on the affected path")
	}

	suggestions = append(suggestions, "Try running as a user with access to the path")

	return suggestions
}

func (g *suggestionGenerator) generateRemoteSuggestions() []string {
	return []string{
		"Check that the SFTP server is reachable and the session is still open",
		"Verify your SSH key or agent is accepted by the server",
	}
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
