//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/internal/logger"
	"github.com/joe/list-files/internal/render"
	pkgerrors "github.com/joe/list-files/pkg/errors"
	"github.com/joe/list-files/pkg/filesystem"
)

// eventCollector collects events for verification.
type eventCollector struct {
	events []listing.Event
}

func (c *eventCollector) Emit(event listing.Event) {
	c.events = append(c.events, event)
}

func (c *eventCollector) complete() listing.RunComplete {
	for _, e := range c.events {
		if done, ok := e.(listing.RunComplete); ok {
			return done
		}
	}

	return listing.RunComplete{}
}

func newLister(opts listing.Options, stderr *bytes.Buffer) (*listing.Lister, *eventCollector) {
	log := logger.NewConsoleLogger(stderr, "list-files", "warn")
	lister := listing.NewLister(filesystem.NewRealFileSystem(), render.NewPrinter(termenv.Ascii), log, opts)

	collector := &eventCollector{}
	lister.SetEventEmitter(collector)

	return lister, collector
}

// TestIntegration_RecursiveListing walks a real tree depth first.
func TestIntegration_RecursiveListing(t *testing.T) {
	g := NewWithT(t)

	root := t.TempDir()
	for _, dir := range []string{"a/b", "c"} {
		g.Expect(os.MkdirAll(filepath.Join(root, dir), 0o755)).To(Succeed())
	}

	for i := range 10 {
		path := filepath.Join(root, "a", "file"+string(rune('a'+i))+".txt")
		g.Expect(os.WriteFile(path, []byte("content"), 0o644)).To(Succeed())
	}

	var stdout, stderr bytes.Buffer
	lister, collector := newLister(listing.Options{Recursive: true, LineWidth: 40}, &stderr)

	status := lister.Run(&stdout, []string{root})

	g.Expect(status).To(Equal(pkgerrors.Success))
	g.Expect(stderr.String()).To(BeEmpty())

	out := stdout.String()
	headers := []string{root + ":", root + "/a:", root + "/a/b:", root + "/c:"}

	last := -1
	for _, header := range headers {
		idx := strings.Index(out, header+"\n")
		g.Expect(idx).To(BeNumerically(">", last), header)
		last = idx
	}

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasSuffix(line, ":") {
			continue
		}
		g.Expect(len(line)).To(BeNumerically("<", 40), line)
	}

	done := collector.complete()
	g.Expect(done.Stats.Directories).To(Equal(4))
	g.Expect(done.Stats.Entries).To(Equal(13))
}

// TestIntegration_SymlinkCycle terminates with one diagnostic.
func TestIntegration_SymlinkCycle(t *testing.T) {
	g := NewWithT(t)

	root := t.TempDir()
	dir := filepath.Join(root, "d")
	g.Expect(os.Mkdir(dir, 0o755)).To(Succeed())
	g.Expect(os.Symlink("../d", filepath.Join(dir, "link"))).To(Succeed())

	var stdout, stderr bytes.Buffer
	lister, collector := newLister(listing.Options{Recursive: true, Dereference: true}, &stderr)

	status := lister.Run(&stdout, []string{dir})

	g.Expect(status).To(Equal(pkgerrors.MinorProblem))
	g.Expect(stdout.String()).To(Equal(dir + ":\nlink\n"))
	g.Expect(stderr.String()).To(Equal("list-files: " + dir + "/link: not listing already-listed directory\n"))
	g.Expect(collector.complete().Stats.Cycles).To(Equal(1))
}

// TestIntegration_UnreadableDirectory reports and continues.
func TestIntegration_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	g := NewWithT(t)

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	g.Expect(os.Mkdir(locked, 0o000)).To(Succeed())
	t.Cleanup(func() {
		_ = os.Chmod(locked, 0o755)
	})
	g.Expect(os.WriteFile(filepath.Join(root, "open"), nil, 0o644)).To(Succeed())

	var stdout, stderr bytes.Buffer
	lister, _ := newLister(listing.Options{Recursive: true}, &stderr)

	status := lister.Run(&stdout, []string{root})

	g.Expect(status).To(Equal(pkgerrors.MinorProblem))
	g.Expect(stdout.String()).To(HavePrefix(root + ":\nlocked  open\n"))
	g.Expect(stderr.String()).To(ContainSubstring("cannot open directory '" + locked + "': Permission denied"))
}
