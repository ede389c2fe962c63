package errors_test

import (
	"testing"

	"github.com/joe/list-files/pkg/errors"
)

func TestPatternMatcher_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		message  string
		expected errors.ErrorCategory
	}{
		{"permission", "open d: permission denied", errors.CategoryPermission},
		{"permission capitalized", "cannot open directory 'd': Permission denied", errors.CategoryPermission},
		{"not permitted", "operation not permitted", errors.CategoryPermission},
		{"missing", "cannot access 'x': No such file or directory", errors.CategoryPath},
		{"not a directory", "open f/x: not a directory", errors.CategoryPath},
		{"symlink loop", "stat a: too many levels of symbolic links", errors.CategoryLoop},
		{"already listed", "a/b: not listing already-listed directory", errors.CategoryLoop},
		{"encoding", "path contains invalid UTF-8: \"\\xff\"", errors.CategoryEncoding},
		{"io", "reading directory 'd': Input/output error", errors.CategoryIO},
		{"remote before permission", "sftp: \"Permission Denied\" (SSH_FX_PERMISSION_DENIED)", errors.CategoryRemote},
		{"unknown", "something else", errors.CategoryUnknown},
	}

	matcher := errors.NewPatternMatcher()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := matcher.Match(tt.message); got != tt.expected {
				t.Errorf("Match(%q) = %q, expected %q", tt.message, got, tt.expected)
			}
		})
	}
}
