// Package terminal reports the width of the output terminal.
package terminal

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term" //nolint:depguard // Required for terminal size detection
)

// DefaultWidth is used when no terminal or COLUMNS value is available.
const DefaultWidth = 80

// Width returns the width of the terminal on fd. When fd is not a terminal
// the COLUMNS environment variable is consulted, then DefaultWidth.
func Width(fd int) int {
	return width(fd, os.Getenv)
}

func width(fd int, getenv func(string) string) int {
	if term.IsTerminal(fd) {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			return cols
		}
	}

	if cols, err := strconv.Atoi(strings.TrimSpace(getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}

	return DefaultWidth
}
