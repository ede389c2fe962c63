package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/joe/list-files/internal/config"
	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/pkg/filesystem"
)

// ProfileFor picks the color profile for --color. Auto colors only when w
// is a terminal and the environment (NO_COLOR, CLICOLOR_FORCE) allows it.
func ProfileFor(mode config.ColorMode, w io.Writer) termenv.Profile {
	switch mode {
	case config.ColorAlways:
		return termenv.ANSI
	case config.ColorNever:
		return termenv.Ascii
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// styles holds one style per kind of name.
type styles struct {
	directory  lipgloss.Style
	symlink    lipgloss.Style
	orphan     lipgloss.Style
	executable lipgloss.Style
	fifo       lipgloss.Style
	device     lipgloss.Style
	socket     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return styles{
		directory:  base.Bold(true).Foreground(lipgloss.Color(blueColorCode)),
		symlink:    base.Bold(true).Foreground(lipgloss.Color(cyanColorCode)),
		orphan:     base.Bold(true).Foreground(lipgloss.Color(redColorCode)),
		executable: base.Bold(true).Foreground(lipgloss.Color(greenColorCode)),
		fifo:       base.Foreground(lipgloss.Color(yellowColorCode)),
		device:     base.Bold(true).Foreground(lipgloss.Color(yellowColorCode)),
		socket:     base.Bold(true).Foreground(lipgloss.Color(magentaColorCode)),
	}
}

// forEntry returns the style of an entry's name, or false for plain text.
func (s styles) forEntry(e *listing.Entry) (lipgloss.Style, bool) {
	switch e.Kind {
	case listing.KindSymbolicLink:
		if e.LinkName != "" && e.LinkMeta == nil {
			return s.orphan, true
		}
		return s.symlink, true
	default:
		return s.forKind(e.Kind, e.Meta)
	}
}

// forKind styles by type, and regular files by their execute bits.
func (s styles) forKind(kind listing.Kind, meta *filesystem.Metadata) (lipgloss.Style, bool) {
	switch kind {
	case listing.KindDirectory, listing.KindArgDirectory:
		return s.directory, true
	case listing.KindSymbolicLink:
		return s.symlink, true
	case listing.KindFifo:
		return s.fifo, true
	case listing.KindCharDevice, listing.KindBlockDevice:
		return s.device, true
	case listing.KindSocket:
		return s.socket, true
	case listing.KindNormal:
		if meta != nil && meta.Mode.Perm()&0o111 != 0 {
			return s.executable, true
		}
	}

	return lipgloss.Style{}, false
}

// unexported constants.
const (
	blueColorCode    = "4"
	cyanColorCode    = "6"
	greenColorCode   = "2"
	magentaColorCode = "5"
	redColorCode     = "1"
	yellowColorCode  = "3"
)
