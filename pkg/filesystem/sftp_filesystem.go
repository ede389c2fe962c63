package filesystem

import (
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"time"

	"github.com/pkg/sftp"
)

// sftpClient is the subset of *sftp.Client the filesystem uses.
type sftpClient interface {
	Stat(p string) (os.FileInfo, error)
	Lstat(p string) (os.FileInfo, error)
	ReadDir(p string) ([]os.FileInfo, error)
	ReadLink(p string) (string, error)
	RealPath(p string) (string, error)
}

// SFTPFileSystem implements FileSystem for SFTP connections.
//
// SFTP exposes neither device nor inode numbers. Directories get a synthetic
// identity hashed from their canonical server path so recursive listings can
// still detect cycles.
type SFTPFileSystem struct {
	client sftpClient
}

// NewSFTPFileSystem creates a new SFTP filesystem using an established connection.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{client: conn.Client()}
}

// newSFTPFileSystemWithClient wraps any client implementation.
func newSFTPFileSystemWithClient(client sftpClient) *SFTPFileSystem {
	return &SFTPFileSystem{client: client}
}

// Lstat returns metadata for a remote path without following a final symlink.
func (fs *SFTPFileSystem) Lstat(path string) (*Metadata, error) {
	info, err := fs.client.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat remote file %s: %w", path, err)
	}

	return fs.metadata(path, info), nil
}

// ReadDir reads a remote directory.
// SFTP returns the whole listing in one request, so a failure is always
// reported as a failure to open the directory.
func (fs *SFTPFileSystem) ReadDir(path string) (DirScanner, error) {
	infos, err := fs.client.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote directory %s: %w", path, err)
	}

	return newSFTPDirScanner(infos), nil
}

// ReadLink returns the target of a remote symbolic link.
func (fs *SFTPFileSystem) ReadLink(path string) (string, error) {
	target, err := fs.client.ReadLink(path)
	if err != nil {
		return "", fmt.Errorf("failed to read remote link %s: %w", path, err)
	}

	return target, nil
}

// Stat returns metadata for a remote path, following symlinks.
func (fs *SFTPFileSystem) Stat(path string) (*Metadata, error) {
	info, err := fs.client.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", path, err)
	}

	return fs.metadata(path, info), nil
}

// metadata converts an SFTP attribute set into Metadata.
func (fs *SFTPFileSystem) metadata(path string, info os.FileInfo) *Metadata {
	meta := &Metadata{
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Links:   1,
		Blocks:  (info.Size() + blockSize - 1) / blockSize,
	}

	if stat, ok := info.Sys().(*sftp.FileStat); ok {
		meta.UID = stat.UID
		meta.GID = stat.GID
		meta.ModTime = time.Unix(int64(stat.Mtime), 0)
	}

	if meta.IsDir() {
		meta.Inode = fs.identity(path)
	}

	return meta
}

// identity hashes the canonical path of a remote directory.
// If the server cannot canonicalize the path the literal path is hashed.
func (fs *SFTPFileSystem) identity(path string) uint64 {
	canonical, err := fs.client.RealPath(path)
	if err != nil {
		canonical = path
	}

	hash := fnv.New64a()
	_, _ = hash.Write([]byte(canonical))

	return hash.Sum64()
}

// blockSize is the unit of Metadata.Blocks.
const blockSize = 512

// sftpDirScanner implements DirScanner over an already-fetched listing.
type sftpDirScanner struct {
	infos []os.FileInfo
	index int
}

// newSFTPDirScanner creates a scanner over a listing.
func newSFTPDirScanner(infos []os.FileInfo) *sftpDirScanner {
	return &sftpDirScanner{infos: infos, index: -1}
}

// Close is a no-op; the listing is already in memory.
func (s *sftpDirScanner) Close() error {
	return nil
}

// Err always returns nil; reading cannot fail after the listing was fetched.
func (s *sftpDirScanner) Err() error {
	return nil
}

// Next advances to the next entry and returns it.
func (s *sftpDirScanner) Next() (DirEntry, bool) {
	s.index++
	if s.index >= len(s.infos) {
		return DirEntry{}, false
	}

	info := s.infos[s.index]

	return DirEntry{
		Name:  info.Name(),
		Type:  info.Mode().Type() & fs.ModeType,
		Known: true,
	}, true
}
