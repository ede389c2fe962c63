//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/list-files/pkg/filesystem"
)

func collectNames(t *testing.T, scanner filesystem.DirScanner) []string {
	t.Helper()

	var names []string
	for {
		entry, ok := scanner.Next()
		if !ok {
			break
		}
		names = append(names, entry.Name)
	}

	return names
}

func TestMockFileSystem_StatAndLstat(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	modTime := time.Now().Add(-1 * time.Hour)
	mfs.AddFile("dir/file.txt", []byte("hello"), modTime)
	mfs.AddSymlink("dir/link", "file.txt")

	info, err := mfs.Stat("dir/link")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Mode.IsRegular()).To(BeTrue())
	g.Expect(info.Size).To(Equal(int64(5)))
	g.Expect(info.ModTime).To(BeTemporally("==", modTime))

	linfo, err := mfs.Lstat("dir/link")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(linfo.Mode & fs.ModeSymlink).NotTo(BeZero())
	g.Expect(linfo.Inode).NotTo(Equal(info.Inode))
}

func TestMockFileSystem_ParentsCreated(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("a/b/c/file", nil, time.Now())

	for _, p := range []string{"a", "a/b", "a/b/c"} {
		info, err := mfs.Stat(p)
		g.Expect(err).ShouldNot(HaveOccurred(), p)
		g.Expect(info.IsDir()).To(BeTrue(), p)
	}
}

func TestMockFileSystem_MissingPath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()

	_, err := mfs.Stat("nope")
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
}

func TestMockFileSystem_SymlinkLoop(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddSymlink("a", "b")
	mfs.AddSymlink("b", "a")

	_, err := mfs.Stat("a")
	g.Expect(errors.Is(err, syscall.ELOOP)).To(BeTrue())

	_, err = mfs.Lstat("a")
	g.Expect(err).ShouldNot(HaveOccurred())
}

func TestMockFileSystem_SymlinkToAncestorSharesIdentity(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("d", time.Now())
	mfs.AddSymlink("d/link", "../d")

	dir, err := mfs.Stat("d")
	g.Expect(err).ShouldNot(HaveOccurred())

	viaLink, err := mfs.Stat("d/link")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(viaLink.Inode).To(Equal(dir.Inode))
	g.Expect(viaLink.Device).To(Equal(dir.Device))

	nested, err := mfs.Stat("d/link/link/link")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(nested.Inode).To(Equal(dir.Inode))
}

func TestMockFileSystem_ReadDirPreservesInsertionOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("d/zeta", nil, time.Now())
	mfs.AddFile("d/alpha", nil, time.Now())
	mfs.AddDir("d/mid", time.Now())
	mfs.AddFile("d/mid/inner", nil, time.Now())

	scanner, err := mfs.ReadDir("d")
	g.Expect(err).ShouldNot(HaveOccurred())
	defer func() {
		_ = scanner.Close()
	}()

	g.Expect(collectNames(t, scanner)).To(Equal([]string{"zeta", "alpha", "mid"}))
	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
}

func TestMockFileSystem_FaultInjection(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("d/secret", nil, time.Now())
	mfs.AddSymlink("d/link", "secret")
	mfs.FailStat("d/secret", syscall.EACCES)
	mfs.FailReadLink("d/link", syscall.EIO)
	mfs.FailScan("d", syscall.EIO)

	_, err := mfs.Lstat("d/secret")
	g.Expect(errors.Is(err, syscall.EACCES)).To(BeTrue())

	_, err = mfs.ReadLink("d/link")
	g.Expect(errors.Is(err, syscall.EIO)).To(BeTrue())

	scanner, err := mfs.ReadDir("d")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(collectNames(t, scanner)).To(HaveLen(2))
	g.Expect(errors.Is(scanner.Err(), syscall.EIO)).To(BeTrue())

	mfs.FailReadDir("d", syscall.EACCES)
	_, err = mfs.ReadDir("d")
	g.Expect(errors.Is(err, syscall.EACCES)).To(BeTrue())
}

func TestMockFileSystem_Devices(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddDevice("dev/tty", true, 5, 0)
	mfs.AddDevice("dev/sda", false, 8, 0)

	tty, err := mfs.Lstat("dev/tty")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(tty.IsDevice()).To(BeTrue())
	g.Expect(tty.Mode & fs.ModeCharDevice).NotTo(BeZero())
	g.Expect(tty.Major).To(Equal(uint32(5)))

	sda, err := mfs.Lstat("dev/sda")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(sda.Mode & fs.ModeCharDevice).To(BeZero())
}

func TestRealFileSystem_ReadDirAndLinks(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(dir, "file.txt"), []byte("content"), 0o644)).To(Succeed())
	g.Expect(os.Mkdir(filepath.Join(dir, "sub"), 0o755)).To(Succeed())
	g.Expect(os.Symlink("file.txt", filepath.Join(dir, "link"))).To(Succeed())

	rfs := filesystem.NewRealFileSystem()

	scanner, err := rfs.ReadDir(dir)
	g.Expect(err).ShouldNot(HaveOccurred())
	defer func() {
		_ = scanner.Close()
	}()

	types := map[string]fs.FileMode{}
	for {
		entry, ok := scanner.Next()
		if !ok {
			break
		}
		g.Expect(entry.Known).To(BeTrue())
		types[entry.Name] = entry.Type
	}
	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(types).To(HaveLen(3))
	g.Expect(types["sub"].IsDir()).To(BeTrue())
	g.Expect(types["link"] & fs.ModeSymlink).NotTo(BeZero())

	target, err := rfs.ReadLink(filepath.Join(dir, "link"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(target).To(Equal("file.txt"))

	meta, err := rfs.Stat(filepath.Join(dir, "link"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(meta.Size).To(Equal(int64(7)))
	g.Expect(meta.Inode).NotTo(BeZero())
	g.Expect(meta.Links).To(BeNumerically(">=", 1))
}

func TestRealFileSystem_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rfs := filesystem.NewRealFileSystem()
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := rfs.Lstat(missing)
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("failed to lstat"))

	_, err = rfs.ReadDir(missing)
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
}
