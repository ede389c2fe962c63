//go:build unix

package filesystem

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/unix" //nolint:depguard // Required for device major/minor decoding
)

// metadataFromInfo extracts the stat fields from an os.FileInfo.
// The platform-specific part comes from the underlying *syscall.Stat_t.
//
//nolint:unconvert // Stat_t field widths differ between linux and darwin
func metadataFromInfo(info fs.FileInfo) *Metadata {
	meta := &Metadata{
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Links:   1,
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return meta
	}

	meta.Device = uint64(stat.Dev) //nolint:gosec // Device ids are non-negative
	meta.Inode = uint64(stat.Ino)
	meta.Links = uint64(stat.Nlink)
	meta.UID = stat.Uid
	meta.GID = stat.Gid
	meta.Blocks = int64(stat.Blocks)

	if meta.IsDevice() {
		rdev := uint64(stat.Rdev) //nolint:gosec // Device ids are non-negative
		meta.Major = unix.Major(rdev)
		meta.Minor = unix.Minor(rdev)
	}

	return meta
}
