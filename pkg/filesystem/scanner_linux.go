//go:build linux

package filesystem

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// direntBufferSize is the getdents buffer handed to the kernel per call.
const direntBufferSize = 32 << 10

// Offsets into a linux_dirent64 record. The layout is the same on every
// architecture.
const (
	direntInoOffset    = 0
	direntReclenOffset = 16
	direntTypeOffset   = 18
	direntNameOffset   = 19
)

// direntScanner implements DirScanner by decoding getdents64 records, which
// carry the inode number and type of every entry without a stat call.
type direntScanner struct {
	dir  *os.File
	buf  []byte
	pos  int
	end  int
	err  error
	done bool
}

// newDirScanner creates a new scanner for an opened directory.
func newDirScanner(dir *os.File) DirScanner {
	return &direntScanner{dir: dir, buf: make([]byte, direntBufferSize)}
}

// Close releases the directory handle.
func (s *direntScanner) Close() error {
	return s.dir.Close()
}

// Err returns any error that occurred while reading entries.
func (s *direntScanner) Err() error {
	return s.err
}

// Next advances to the next entry and returns it.
func (s *direntScanner) Next() (DirEntry, bool) {
	for {
		if s.pos >= s.end && !s.fill() {
			return DirEntry{}, false
		}

		if entry, ok := s.decode(); ok {
			return entry, true
		}
	}
}

// fill reads the next block of records. It returns false at the end of the
// directory or on error.
func (s *direntScanner) fill() bool {
	if s.done {
		return false
	}

	for {
		n, err := unix.ReadDirent(int(s.dir.Fd()), s.buf) //nolint:gosec // File descriptors fit in int
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			s.done = true
			s.err = &fs.PathError{Op: "readdirent", Path: s.dir.Name(), Err: err}

			return false
		}

		if n <= 0 {
			s.done = true
			return false
		}

		s.pos, s.end = 0, n

		return true
	}
}

// decode consumes one record. Deleted slots and the "." and ".." entries
// are consumed without producing an entry. A truncated record ends the
// current block.
func (s *direntScanner) decode() (DirEntry, bool) {
	rec := s.buf[s.pos:s.end]
	if len(rec) < direntNameOffset {
		s.pos = s.end
		return DirEntry{}, false
	}

	reclen := int(binary.NativeEndian.Uint16(rec[direntReclenOffset:]))
	if reclen < direntNameOffset || reclen > len(rec) {
		s.pos = s.end
		return DirEntry{}, false
	}

	s.pos += reclen

	inode := binary.NativeEndian.Uint64(rec[direntInoOffset:])

	name := rec[direntNameOffset:reclen]
	if nul := bytes.IndexByte(name, 0); nul >= 0 {
		name = name[:nul]
	}

	if inode == 0 || string(name) == "." || string(name) == ".." {
		return DirEntry{}, false
	}

	typ, known := direntType(rec[direntTypeOffset])

	return DirEntry{Name: string(name), Type: typ, Known: known, Inode: inode}, true
}

// direntType maps a d_type value to mode type bits.
func direntType(t uint8) (fs.FileMode, bool) {
	switch t {
	case unix.DT_REG:
		return 0, true
	case unix.DT_DIR:
		return fs.ModeDir, true
	case unix.DT_LNK:
		return fs.ModeSymlink, true
	case unix.DT_FIFO:
		return fs.ModeNamedPipe, true
	case unix.DT_SOCK:
		return fs.ModeSocket, true
	case unix.DT_CHR:
		return fs.ModeDevice | fs.ModeCharDevice, true
	case unix.DT_BLK:
		return fs.ModeDevice, true
	default:
		return 0, false
	}
}
