//go:build linux

//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/list-files/pkg/filesystem"
)

func TestRealFileSystem_ReadDirReportsInodes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(root, "file"), []byte("x"), 0o644)).To(Succeed())
	g.Expect(os.Mkdir(filepath.Join(root, "dir"), 0o755)).To(Succeed())
	g.Expect(os.Symlink("file", filepath.Join(root, "link"))).To(Succeed())
	g.Expect(syscall.Mkfifo(filepath.Join(root, "fifo"), 0o644)).To(Succeed())

	rfs := filesystem.NewRealFileSystem()

	scanner, err := rfs.ReadDir(root)
	g.Expect(err).ShouldNot(HaveOccurred())
	defer scanner.Close()

	seen := map[string]filesystem.DirEntry{}
	for {
		entry, ok := scanner.Next()
		if !ok {
			break
		}
		seen[entry.Name] = entry
	}
	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(seen).To(HaveLen(4))

	wantTypes := map[string]fs.FileMode{
		"file": 0,
		"dir":  fs.ModeDir,
		"link": fs.ModeSymlink,
		"fifo": fs.ModeNamedPipe,
	}

	for name, want := range wantTypes {
		meta, err := rfs.Lstat(filepath.Join(root, name))
		g.Expect(err).ShouldNot(HaveOccurred())

		entry := seen[name]
		g.Expect(entry.Inode).To(Equal(meta.Inode), name)
		g.Expect(entry.Inode).NotTo(BeZero(), name)
		if entry.Known {
			g.Expect(entry.Type).To(Equal(want), name)
		}
	}
}

func TestRealFileSystem_ReadDirSpansManyBlocks(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	padding := strings.Repeat("n", 100)

	const count = 1000
	for i := range count {
		name := filepath.Join(root, fmt.Sprintf("%s-%04d", padding, i))
		g.Expect(os.WriteFile(name, nil, 0o644)).To(Succeed())
	}

	scanner, err := filesystem.NewRealFileSystem().ReadDir(root)
	g.Expect(err).ShouldNot(HaveOccurred())
	defer scanner.Close()

	names := map[string]bool{}
	for {
		entry, ok := scanner.Next()
		if !ok {
			break
		}
		g.Expect(entry.Inode).NotTo(BeZero())
		names[entry.Name] = true
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(names).To(HaveLen(count))
	g.Expect(names).To(HaveKey(padding + "-0999"))
}
