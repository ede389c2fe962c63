// Package listing implements the traversal and layout engine of list-files.
//
// A Lister resolves the caller's paths into entries, drains a LIFO queue of
// pending directories (depth first, in sorted order), guards recursive
// descent against directory cycles, and packs each directory's entries
// into as many columns as the line width allows. Rendering of the entries
// is delegated to a Printer.
package listing

import (
	"io/fs"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/joe/list-files/pkg/filesystem"
)

// Kind is the type of a listed entry.
type Kind int

// Exported constants.
const (
	// KindUnknown - type not known yet
	KindUnknown Kind = iota
	// KindNormal - regular file
	KindNormal
	// KindDirectory - directory discovered while listing
	KindDirectory
	// KindArgDirectory - directory named by the caller
	KindArgDirectory
	// KindSymbolicLink - symbolic link
	KindSymbolicLink
	// KindCharDevice - character device
	KindCharDevice
	// KindBlockDevice - block device
	KindBlockDevice
	// KindFifo - named pipe
	KindFifo
	// KindSocket - unix domain socket
	KindSocket
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindNormal:
		return "normal"
	case KindDirectory:
		return "directory"
	case KindArgDirectory:
		return "arg-directory"
	case KindSymbolicLink:
		return "symbolic-link"
	case KindCharDevice:
		return "char-device"
	case KindBlockDevice:
		return "block-device"
	case KindFifo:
		return "fifo"
	case KindSocket:
		return "socket"
	default:
		return "invalid"
	}
}

// IsDirectory reports whether k is either directory kind.
func (k Kind) IsDirectory() bool {
	return k == KindDirectory || k == KindArgDirectory
}

// KindFromMode classifies the type bits of mode. Directories named by the
// caller are ArgDirectory.
func KindFromMode(mode fs.FileMode, callerArgument bool) Kind {
	switch {
	case mode.IsRegular():
		return KindNormal
	case mode.IsDir():
		if callerArgument {
			return KindArgDirectory
		}
		return KindDirectory
	case mode&fs.ModeSymlink != 0:
		return KindSymbolicLink
	case mode&fs.ModeCharDevice != 0:
		return KindCharDevice
	case mode&fs.ModeDevice != 0:
		return KindBlockDevice
	case mode&fs.ModeNamedPipe != 0:
		return KindFifo
	case mode&fs.ModeSocket != 0:
		return KindSocket
	default:
		return KindUnknown
	}
}

// Entry is one listed filesystem object.
type Entry struct {
	// Name as given by the caller or as read from the directory
	Name string
	// LinkName is the target of a symbolic link, read in long format only
	LinkName string
	// Meta is nil when metadata was not needed or could not be read
	Meta *filesystem.Metadata
	// LinkMeta describes the link target when it could be read
	LinkMeta *filesystem.Metadata
	Kind     Kind
	// Inode is 0 for caller arguments
	Inode uint64
	// Width is the display width of the quoted name
	Width int

	quoted bool
	// path opens a caller argument whose Name is not a FileSystem path
	path string
}

// NewEntry creates an entry and computes its display width.
func NewEntry(name string, kind Kind, inode uint64) Entry {
	quoted := strings.ContainsFunc(name, unicode.IsSpace)

	width := runewidth.StringWidth(name)
	if quoted {
		width += 2
	}

	return Entry{
		Name:   name,
		Kind:   kind,
		Inode:  inode,
		Width:  width,
		quoted: quoted,
	}
}

// IsDirectory reports whether the entry is a directory.
func (e *Entry) IsDirectory() bool {
	return e.Kind.IsDirectory()
}

// openPath returns the name to hand to the FileSystem.
func (e *Entry) openPath() string {
	if e.path != "" {
		return e.path
	}

	return e.Name
}

// QuotedName returns the name, in single quotes when it contains whitespace.
func (e *Entry) QuotedName() string {
	if e.quoted {
		return "'" + e.Name + "'"
	}

	return e.Name
}

// joinPath appends name to dir without doubling the separator.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}

	return dir + "/" + name
}

// baseName returns the last element of a slash-separated path.
func baseName(p string) string {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return p
	}

	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}

// dirName returns everything before the last element of p, or "." when p
// has a single element.
func dirName(p string) string {
	trimmed := strings.TrimRight(p, "/")

	i := strings.LastIndex(trimmed, "/")
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	default:
		return trimmed[:i]
	}
}

func isDotOrDotDot(name string) bool {
	return name == "." || name == ".."
}
