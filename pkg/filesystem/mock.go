package filesystem

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths are slash-separated and relative to the mock root; a leading "/"
// also refers to the mock root. Symbolic links are resolved the way a
// kernel would, including links inside parent components.
type MockFileSystem struct {
	mu        sync.RWMutex
	nodes     map[string]*mockNode
	nextInode uint64
	nextOrder int

	statErrs    map[string]error
	readDirErrs map[string]error
	scanErrs    map[string]error
	linkErrs    map[string]error
}

// mockNode represents one object in the mock filesystem.
type mockNode struct {
	mode    fs.FileMode
	inode   uint64
	size    int64
	modTime time.Time
	uid     uint32
	gid     uint32
	links   uint64
	target  string
	major   uint32
	minor   uint32
	order   int
}

// maxSymlinkDepth mirrors the kernel's SYMLOOP_MAX.
const maxSymlinkDepth = 40

// mockDevice is the device id every mock node reports.
const mockDevice = 42

// NewMockFileSystem creates a new in-memory filesystem with an empty root.
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		nodes:       make(map[string]*mockNode),
		statErrs:    make(map[string]error),
		readDirErrs: make(map[string]error),
		scanErrs:    make(map[string]error),
		linkErrs:    make(map[string]error),
	}
	mfs.nodes["."] = mfs.newNode(fs.ModeDir|0o755, time.Now())

	return mfs
}

// Lstat returns metadata without following a final symbolic link.
func (mfs *MockFileSystem) Lstat(name string) (*Metadata, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if err, ok := mfs.statErrs[clean(name)]; ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}

	key, err := mfs.resolve(name, false, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}

	return mfs.nodes[key].metadata(), nil
}

// ReadDir opens a directory for scanning.
func (mfs *MockFileSystem) ReadDir(name string) (DirScanner, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if err, ok := mfs.readDirErrs[clean(name)]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	key, err := mfs.resolve(name, true, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	if !mfs.nodes[key].mode.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: syscall.ENOTDIR}
	}

	type child struct {
		name string
		node *mockNode
	}

	var children []child
	for p, node := range mfs.nodes {
		if p != key && path.Dir(p) == key {
			children = append(children, child{name: path.Base(p), node: node})
		}
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].node.order < children[j].node.order
	})

	entries := make([]DirEntry, len(children))
	for i, c := range children {
		entries[i] = DirEntry{
			Name:  c.name,
			Type:  c.node.mode.Type(),
			Known: true,
			Inode: c.node.inode,
		}
	}

	scanErr := mfs.scanErrs[clean(name)]
	if scanErr != nil {
		scanErr = &fs.PathError{Op: "readdirent", Path: name, Err: scanErr}
	}

	return &mockDirScanner{entries: entries, index: -1, err: scanErr}, nil
}

// ReadLink returns the target of a symbolic link.
func (mfs *MockFileSystem) ReadLink(name string) (string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if err, ok := mfs.linkErrs[clean(name)]; ok {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}

	key, err := mfs.resolve(name, false, 0)
	if err != nil {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}

	node := mfs.nodes[key]
	if node.mode&fs.ModeSymlink == 0 {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: syscall.EINVAL}
	}

	return node.target, nil
}

// Stat returns metadata, following symbolic links.
func (mfs *MockFileSystem) Stat(name string) (*Metadata, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if err, ok := mfs.statErrs[clean(name)]; ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}

	key, err := mfs.resolve(name, true, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}

	return mfs.nodes[key].metadata(), nil
}

// Helper methods for testing

// AddDir adds a directory, creating missing parents.
func (mfs *MockFileSystem) AddDir(name string, modTime time.Time) {
	mfs.add(name, mfs.newNode(fs.ModeDir|0o755, modTime))
}

// AddFile adds a regular file with the given content and modtime.
func (mfs *MockFileSystem) AddFile(name string, content []byte, modTime time.Time) {
	node := mfs.newNode(0o644, modTime)
	node.size = int64(len(content))
	mfs.add(name, node)
}

// AddSymlink adds a symbolic link pointing at target.
func (mfs *MockFileSystem) AddSymlink(name, target string) {
	node := mfs.newNode(fs.ModeSymlink|0o777, time.Now())
	node.target = target
	node.size = int64(len(target))
	mfs.add(name, node)
}

// AddDevice adds a character (char true) or block device node.
func (mfs *MockFileSystem) AddDevice(name string, char bool, major, minor uint32) {
	mode := fs.ModeDevice | 0o660
	if char {
		mode |= fs.ModeCharDevice
	}

	node := mfs.newNode(mode, time.Now())
	node.major = major
	node.minor = minor
	mfs.add(name, node)
}

// AddFifo adds a named pipe.
func (mfs *MockFileSystem) AddFifo(name string) {
	mfs.add(name, mfs.newNode(fs.ModeNamedPipe|0o644, time.Now()))
}

// Chmod replaces the permission bits of an existing node.
func (mfs *MockFileSystem) Chmod(name string, perm fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if node, ok := mfs.nodes[clean(name)]; ok {
		node.mode = node.mode.Type() | perm.Perm()
	}
}

// Chown replaces the owner and group of an existing node.
func (mfs *MockFileSystem) Chown(name string, uid, gid uint32) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if node, ok := mfs.nodes[clean(name)]; ok {
		node.uid = uid
		node.gid = gid
	}
}

// Exists checks if a path exists without following a final symlink.
func (mfs *MockFileSystem) Exists(name string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	_, err := mfs.resolve(name, false, 0)

	return err == nil
}

// FailReadDir makes opening the directory named exactly name fail with err.
func (mfs *MockFileSystem) FailReadDir(name string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.readDirErrs[clean(name)] = err
}

// FailReadLink makes reading the link named exactly name fail with err.
func (mfs *MockFileSystem) FailReadLink(name string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.linkErrs[clean(name)] = err
}

// FailScan makes the scanner for directory name report err after its entries.
func (mfs *MockFileSystem) FailScan(name string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.scanErrs[clean(name)] = err
}

// FailStat makes Stat and Lstat of the path named exactly name fail with err.
func (mfs *MockFileSystem) FailStat(name string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.statErrs[clean(name)] = err
}

// add inserts node at name, creating parent directories as needed.
func (mfs *MockFileSystem) add(name string, node *mockNode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	key := clean(name)
	mfs.mkdirAllLocked(path.Dir(key))
	mfs.nodes[key] = node
}

// mkdirAllLocked creates key and its parents. The lock must be held.
func (mfs *MockFileSystem) mkdirAllLocked(key string) {
	if key == "." {
		return
	}

	mfs.mkdirAllLocked(path.Dir(key))

	if _, exists := mfs.nodes[key]; !exists {
		mfs.nodes[key] = mfs.newNode(fs.ModeDir|0o755, time.Now())
	}
}

// newNode allocates a node with a fresh inode.
func (mfs *MockFileSystem) newNode(mode fs.FileMode, modTime time.Time) *mockNode {
	mfs.nextInode++
	mfs.nextOrder++

	links := uint64(1)
	if mode.IsDir() {
		links = 2
	}

	return &mockNode{
		mode:    mode,
		inode:   mfs.nextInode,
		modTime: modTime,
		uid:     1000,
		gid:     1000,
		links:   links,
		order:   mfs.nextOrder,
	}
}

// resolve walks name component by component and returns the key of the node
// it names. Symlinks in parent components are always followed; the final
// component is followed only when followFinal is set.
func (mfs *MockFileSystem) resolve(name string, followFinal bool, depth int) (string, error) {
	if depth > maxSymlinkDepth {
		return "", syscall.ELOOP
	}

	parts := strings.Split(strings.Trim(name, "/"), "/")
	cur := "."

	for i, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			cur = path.Dir(cur)
			continue
		}

		if !mfs.nodes[cur].mode.IsDir() {
			return "", syscall.ENOTDIR
		}

		next := path.Join(cur, part)

		node, ok := mfs.nodes[next]
		if !ok {
			return "", syscall.ENOENT
		}

		last := i == len(parts)-1
		if node.mode&fs.ModeSymlink != 0 && (!last || followFinal) {
			target := node.target
			if !strings.HasPrefix(target, "/") {
				target = path.Join(cur, target)
			}

			resolved, err := mfs.resolve(target, true, depth+1)
			if err != nil {
				return "", err
			}

			cur = resolved

			continue
		}

		cur = next
	}

	return cur, nil
}

// metadata converts a node into Metadata.
func (n *mockNode) metadata() *Metadata {
	return &Metadata{
		Device:  mockDevice,
		Inode:   n.inode,
		Mode:    n.mode,
		Size:    n.size,
		Links:   n.links,
		UID:     n.uid,
		GID:     n.gid,
		ModTime: n.modTime,
		Major:   n.major,
		Minor:   n.minor,
		Blocks:  (n.size + blockSize - 1) / blockSize,
	}
}

// clean normalizes a mock path to a node key.
func clean(name string) string {
	return path.Clean(strings.TrimPrefix(name, "/"))
}

// mockDirScanner implements DirScanner over a prepared listing.
type mockDirScanner struct {
	entries []DirEntry
	index   int
	err     error
	closed  bool
}

// Close marks the scanner closed.
func (s *mockDirScanner) Close() error {
	if s.closed {
		return errors.New("scanner already closed")
	}

	s.closed = true

	return nil
}

// Err returns the injected read error, once all entries were consumed.
func (s *mockDirScanner) Err() error {
	if s.index < len(s.entries) {
		return nil
	}

	return s.err
}

// Next advances to the next entry and returns it.
func (s *mockDirScanner) Next() (DirEntry, bool) {
	s.index++
	if s.index >= len(s.entries) {
		s.index = len(s.entries)
		return DirEntry{}, false
	}

	return s.entries[s.index], true
}
