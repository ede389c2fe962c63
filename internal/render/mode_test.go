package render_test

import (
	"io/fs"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/internal/render"
	"github.com/joe/list-files/pkg/filesystem"
)

func TestModeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     listing.Kind
		mode     fs.FileMode
		expected string
	}{
		{"regular", listing.KindNormal, 0o644, "-rw-r--r--"},
		{"directory", listing.KindDirectory, fs.ModeDir | 0o755, "drwxr-xr-x"},
		{"symlink", listing.KindSymbolicLink, fs.ModeSymlink | 0o777, "lrwxrwxrwx"},
		{"char device", listing.KindCharDevice, fs.ModeDevice | fs.ModeCharDevice | 0o620, "crw--w----"},
		{"fifo", listing.KindFifo, fs.ModeNamedPipe | 0o600, "prw-------"},
		{"setuid", listing.KindNormal, fs.ModeSetuid | 0o755, "-rwsr-xr-x"},
		{"setgid without execute", listing.KindNormal, fs.ModeSetgid | 0o644, "-rw-r-Sr--"},
		{"sticky", listing.KindDirectory, fs.ModeDir | fs.ModeSticky | 0o777, "drwxrwxrwt"},
		{"sticky without execute", listing.KindDirectory, fs.ModeDir | fs.ModeSticky | 0o776, "drwxrwxrwT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(render.ModeString(tt.kind, &filesystem.Metadata{Mode: tt.mode})).To(Equal(tt.expected))
		})
	}
}

func TestModeString_MissingMetadata(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(render.ModeString(listing.KindNormal, nil)).To(Equal("-?????????"))
	g.Expect(render.ModeString(listing.KindUnknown, nil)).To(Equal("??????????"))
}
