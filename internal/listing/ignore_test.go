//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package listing_test

import (
	"testing"

	"github.com/joe/list-files/internal/listing"
)

func TestIgnoreModeFor(t *testing.T) {
	t.Parallel()

	if listing.IgnoreModeFor(true, true) != listing.IgnoreMinimal {
		t.Error("-a should win over -A")
	}

	if listing.IgnoreModeFor(false, true) != listing.IgnoreDotAndDotDot {
		t.Error("-A should hide only . and ..")
	}

	if listing.IgnoreModeFor(false, false) != listing.IgnoreDefault {
		t.Error("no flag should hide dot entries")
	}
}

func TestFilterIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mode    listing.IgnoreMode
		ignore  []string
		hide    []string
		entry   string
		ignored bool
	}{
		{"default hides dotfile", listing.IgnoreDefault, nil, nil, ".profile", true},
		{"default hides dot", listing.IgnoreDefault, nil, nil, ".", true},
		{"default shows plain", listing.IgnoreDefault, nil, nil, "notes", false},
		{"almost-all shows dotfile", listing.IgnoreDotAndDotDot, nil, nil, ".profile", false},
		{"almost-all hides dotdot", listing.IgnoreDotAndDotDot, nil, nil, "..", true},
		{"all shows dotdot", listing.IgnoreMinimal, nil, nil, "..", false},
		{"ignore pattern", listing.IgnoreMinimal, []string{"*.o"}, nil, "main.o", true},
		{"ignore pattern is case sensitive", listing.IgnoreDefault, []string{"*.o"}, nil, "MAIN.O", false},
		{"ignore braces", listing.IgnoreDefault, []string{"*.{tmp,bak}"}, nil, "x.bak", true},
		{"hide in default", listing.IgnoreDefault, nil, []string{"*~"}, "notes~", true},
		{"hide overridden by almost-all", listing.IgnoreDotAndDotDot, nil, []string{"*~"}, "notes~", false},
		{"invalid pattern matches nothing", listing.IgnoreDefault, []string{"[abc"}, nil, "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter := listing.NewFilter(tt.mode, tt.ignore, tt.hide)
			if got := filter.Ignored(tt.entry); got != tt.ignored {
				t.Errorf("Ignored(%q) = %v, want %v", tt.entry, got, tt.ignored)
			}
		})
	}
}
