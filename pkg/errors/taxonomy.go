package errors

import (
	"errors"
	"fmt"
	"syscall"
	"unicode"
	"unicode/utf8"
)

// Kind classifies what a listing was doing when it failed.
type Kind int

// Exported constants.
const (
	// KindPathEncoding - a name or path is not valid UTF-8
	KindPathEncoding Kind = iota
	// KindOpenDirectory - a directory could not be opened
	KindOpenDirectory
	// KindReadDirectory - reading entries from an open directory failed
	KindReadDirectory
	// KindAccess - stat or lstat failed
	KindAccess
	// KindReadLink - a symbolic link or its target could not be read
	KindReadLink
	// KindDeviceInode - the identity of a directory could not be determined
	KindDeviceInode
	// KindAlreadyListed - a directory cycle was detected
	KindAlreadyListed
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindPathEncoding:
		return "path-encoding"
	case KindOpenDirectory:
		return "open-directory"
	case KindReadDirectory:
		return "read-directory"
	case KindAccess:
		return "access"
	case KindReadLink:
		return "read-link"
	case KindDeviceInode:
		return "device-inode"
	case KindAlreadyListed:
		return "already-listed"
	default:
		return "unknown"
	}
}

// ListError is a recoverable failure encountered while listing.
type ListError struct {
	Kind Kind
	Path string
	Err  error
}

// New creates a ListError of the given kind.
func New(kind Kind, path string, err error) *ListError {
	return &ListError{Kind: kind, Path: path, Err: err}
}

// Error implements the error interface.
func (e *ListError) Error() string {
	switch e.Kind {
	case KindPathEncoding:
		return fmt.Sprintf("path contains invalid UTF-8: %q", e.Path)
	case KindOpenDirectory:
		return fmt.Sprintf("cannot open directory '%s': %s", e.Path, Cause(e.Err))
	case KindReadDirectory:
		return fmt.Sprintf("reading directory '%s': %s", e.Path, Cause(e.Err))
	case KindAccess:
		return fmt.Sprintf("cannot access '%s': %s", e.Path, Cause(e.Err))
	case KindReadLink:
		return fmt.Sprintf("cannot read symbolic link '%s': %s", e.Path, Cause(e.Err))
	case KindDeviceInode:
		return fmt.Sprintf("cannot determine device and inode of '%s': %s", e.Path, Cause(e.Err))
	case KindAlreadyListed:
		return e.Path + ": not listing already-listed directory"
	default:
		return fmt.Sprintf("%s: %s", e.Path, Cause(e.Err))
	}
}

// Unwrap returns the underlying error.
func (e *ListError) Unwrap() error {
	return e.Err
}

// Cause returns the message of the innermost error in err's chain.
// Backends wrap OS errors with context ("failed to stat x: lstat x: ..."),
// and diagnostics only want the final reason. System error numbers are
// capitalized the way strerror reports them.
func Cause(err error) string {
	if err == nil {
		return "unknown error"
	}

	root := err
	for {
		next := errors.Unwrap(root)
		if next == nil {
			break
		}
		root = next
	}

	var errno syscall.Errno
	if errors.As(root, &errno) {
		return capitalize(errno.Error())
	}

	return root.Error()
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
