package filesystem

import (
	"io/fs"
	"time"
)

// DirScanner is an iterator over the entries of one directory.
// It provides a simple Next pattern for traversing directory contents.
type DirScanner interface {
	// Next advances to the next entry and returns it.
	// Returns (DirEntry{}, false) when done or on error.
	// Check Err() after Next() returns false to distinguish between end-of-scan and error.
	Next() (DirEntry, bool)

	// Err returns any error that occurred while reading entries.
	// Should be checked after Next() returns false.
	Err() error

	// Close releases the directory handle.
	Close() error
}

// DirEntry is one name read from a directory, with the type hint the
// directory reader provides for free.
type DirEntry struct {
	// Name is the base name of the entry
	Name string

	// Type holds only the type bits of the mode (fs.ModeDir, fs.ModeSymlink, ...).
	// A Type of zero with Known false means the reader could not tell.
	Type fs.FileMode

	// Known reports whether Type is meaningful
	Known bool

	// Inode is the inode number when the reader provides one, else 0.
	// The local reader fills it on Linux only.
	Inode uint64
}

// Metadata contains the stat data a listing needs.
// This is our own type (not os.FileInfo) so that every backend fills in the
// same fields.
type Metadata struct {
	// Device and Inode identify the file on its filesystem
	Device uint64
	Inode  uint64

	// Mode is the Go file mode (type and permission bits)
	Mode fs.FileMode

	// Size is the file size in bytes
	Size int64

	// Links is the hard link count
	Links uint64

	// UID and GID are the numeric owner and group
	UID uint32
	GID uint32

	// ModTime is the modification time
	ModTime time.Time

	// Major and Minor are the device numbers of character and block devices
	Major uint32
	Minor uint32

	// Blocks is the number of 512-byte blocks allocated
	Blocks int64
}

// IsDir reports whether the metadata describes a directory.
func (m *Metadata) IsDir() bool {
	return m.Mode.IsDir()
}

// IsDevice reports whether the metadata describes a character or block device.
func (m *Metadata) IsDevice() bool {
	return m.Mode&fs.ModeDevice != 0
}
