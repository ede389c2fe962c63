//go:build !linux

package filesystem

import (
	"errors"
	"io"
	"os"
)

// realDirScanner implements DirScanner over an open *os.File.
type realDirScanner struct {
	dir     *os.File
	pending []os.DirEntry
	err     error
	done    bool
}

// readBatchSize is how many entries are requested from the OS per call.
const readBatchSize = 256

// newDirScanner creates a new scanner for an opened directory. Entries carry
// type hints but no inode numbers.
func newDirScanner(dir *os.File) DirScanner {
	return &realDirScanner{dir: dir}
}

// Close releases the directory handle.
func (s *realDirScanner) Close() error {
	return s.dir.Close()
}

// Err returns any error that occurred while reading entries.
func (s *realDirScanner) Err() error {
	return s.err
}

// Next advances to the next entry and returns it.
func (s *realDirScanner) Next() (DirEntry, bool) {
	if len(s.pending) == 0 {
		if s.done {
			return DirEntry{}, false
		}

		s.fill()

		if len(s.pending) == 0 {
			return DirEntry{}, false
		}
	}

	entry := s.pending[0]
	s.pending = s.pending[1:]

	return DirEntry{
		Name:  entry.Name(),
		Type:  entry.Type(),
		Known: true,
	}, true
}

// fill reads the next batch of entries from the directory.
func (s *realDirScanner) fill() {
	entries, err := s.dir.ReadDir(readBatchSize)
	s.pending = entries

	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
	}
}
