// Package filesystem provides an abstraction layer for the metadata queries a
// directory lister needs, so listings can run against the local disk, a
// remote SFTP server, or an in-memory tree in tests.
package filesystem

import (
	"fmt"
	"os"
)

// FileSystem is an interface that abstracts metadata operations.
// This allows for dependency injection and testing with mock implementations.
type FileSystem interface {
	// Stat returns metadata for path, following symbolic links.
	Stat(path string) (*Metadata, error)

	// Lstat returns metadata for path without following a final symbolic link.
	Lstat(path string) (*Metadata, error)

	// ReadDir opens the directory at path and returns an iterator over its
	// entries. The error is non-nil only when the directory cannot be opened;
	// failures while reading entries are reported by DirScanner.Err.
	ReadDir(path string) (DirScanner, error)

	// ReadLink returns the target of the symbolic link at path.
	ReadLink(path string) (string, error)
}

// RealFileSystem implements FileSystem using the os package.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// Lstat returns metadata without following a final symbolic link.
func (fs *RealFileSystem) Lstat(path string) (*Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat %s: %w", path, err)
	}

	return metadataFromInfo(info), nil
}

// ReadDir opens a directory for scanning.
func (fs *RealFileSystem) ReadDir(path string) (DirScanner, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	return newDirScanner(dir), nil
}

// ReadLink returns the target of a symbolic link.
func (fs *RealFileSystem) ReadLink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("failed to read link %s: %w", path, err)
	}

	return target, nil
}

// Stat returns metadata, following symbolic links.
func (fs *RealFileSystem) Stat(path string) (*Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return metadataFromInfo(info), nil
}
