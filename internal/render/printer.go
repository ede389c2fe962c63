// Package render writes listing blocks to the terminal: names packed into
// the columns of a listing.ColumnPlan, or one long-format line per entry.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/pkg/filesystem"
)

// TimeLayout is the modification time format of long lines.
const TimeLayout = "2006-01-02 15:04:05"

// missingTime stands in for the time of an entry without metadata.
var missingTime = strings.Repeat(" ", len(TimeLayout)-1) + "?" //nolint:gochecknoglobals // Derived constant

// Printer implements listing.Printer.
type Printer struct {
	colored  bool
	styles   styles
	location *time.Location
}

// NewPrinter creates a printer. Names are colored unless profile is Ascii.
func NewPrinter(profile termenv.Profile) *Printer {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(profile)

	return &Printer{
		colored:  profile != termenv.Ascii,
		styles:   newStyles(renderer),
		location: time.Local,
	}
}

// SetLocation changes the zone modification times are shown in.
func (p *Printer) SetLocation(loc *time.Location) {
	p.location = loc
}

// PrintGrid writes entries in the cells of plan. Every cell but the last
// of a row is padded to its column width.
func (p *Printer) PrintGrid(w io.Writer, entries []*listing.Entry, plan listing.ColumnPlan) error {
	var line strings.Builder

	for row := range plan.Rows {
		line.Reset()

		for col := range plan.Columns {
			idx := plan.Index(row, col)
			if idx < 0 {
				break
			}

			entry := entries[idx]
			line.WriteString(p.name(entry))

			if col+1 < plan.Columns && plan.Index(row, col+1) >= 0 {
				line.WriteString(strings.Repeat(" ", max(plan.Widths[col]-entry.Width, 0)))
			}
		}

		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
	}

	return nil
}

// PrintLong writes one line per entry:
// mode, links, owner, group, size, modification time, name and link target.
func (p *Printer) PrintLong(w io.Writer, entries []*listing.Entry, info listing.FormatInfo) error {
	var line strings.Builder

	for _, entry := range entries {
		line.Reset()
		p.longLine(&line, entry, info)

		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
	}

	return nil
}

func (p *Printer) longLine(line *strings.Builder, entry *listing.Entry, info listing.FormatInfo) {
	meta := entry.Meta

	line.WriteString(ModeString(entry.Kind, meta))
	line.WriteByte(' ')

	if meta == nil {
		for _, width := range []int{info.HardLink, info.User, info.Group, info.Size} {
			line.WriteString(padLeft("?", width))
			line.WriteByte(' ')
		}

		line.WriteString(missingTime)
	} else {
		line.WriteString(padLeft(strconv.FormatUint(meta.Links, 10), info.HardLink))
		line.WriteByte(' ')
		line.WriteString(padLeft(strconv.FormatUint(uint64(meta.UID), 10), info.User))
		line.WriteByte(' ')
		line.WriteString(padLeft(strconv.FormatUint(uint64(meta.GID), 10), info.Group))
		line.WriteByte(' ')
		line.WriteString(padLeft(sizeField(meta, info), info.Size))
		line.WriteByte(' ')
		line.WriteString(meta.ModTime.In(p.location).Format(TimeLayout))
	}

	line.WriteByte(' ')
	line.WriteString(p.name(entry))

	if entry.LinkName != "" {
		line.WriteString(" -> ")
		line.WriteString(p.target(entry))
	}

	line.WriteByte('\n')
}

// sizeField is the byte size, or "major, minor" for devices.
func sizeField(meta *filesystem.Metadata, info listing.FormatInfo) string {
	if meta.IsDevice() {
		return padLeft(strconv.FormatUint(uint64(meta.Major), 10), info.Major) + ", " +
			padLeft(strconv.FormatUint(uint64(meta.Minor), 10), info.Minor)
	}

	return strconv.FormatInt(meta.Size, 10)
}

func (p *Printer) name(entry *listing.Entry) string {
	text := entry.QuotedName()
	if !p.colored {
		return text
	}

	if style, ok := p.styles.forEntry(entry); ok {
		return style.Render(text)
	}

	return text
}

// target colors a link target by the type it resolved to.
func (p *Printer) target(entry *listing.Entry) string {
	if !p.colored || entry.LinkMeta == nil {
		return entry.LinkName
	}

	kind := listing.KindFromMode(entry.LinkMeta.Mode, false)
	if style, ok := p.styles.forKind(kind, entry.LinkMeta); ok {
		return style.Render(entry.LinkName)
	}

	return entry.LinkName
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat(" ", width-len(s)) + s
}
