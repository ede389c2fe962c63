package render

import (
	"io/fs"

	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/pkg/filesystem"
)

// ModeString formats the type and permission column of a long line,
// e.g. "drwxr-xr-x". The type comes from kind so it is known even when
// meta is nil, in which case the permissions are "?????????".
func ModeString(kind listing.Kind, meta *filesystem.Metadata) string {
	out := make([]byte, 0, modeWidth)
	out = append(out, typeChar(kind))

	if meta == nil {
		return string(append(out, "?????????"...))
	}

	mode := meta.Mode
	out = appendTriplet(out, mode>>6, mode&fs.ModeSetuid != 0, 's')
	out = appendTriplet(out, mode>>3, mode&fs.ModeSetgid != 0, 's')
	out = appendTriplet(out, mode, mode&fs.ModeSticky != 0, 't')

	return string(out)
}

// modeWidth is the length of a mode string.
const modeWidth = 10

// appendTriplet appends "rwx" for the low three bits of perm. A special
// bit replaces x with its letter, upper-cased when x is not set.
func appendTriplet(out []byte, perm fs.FileMode, special bool, letter byte) []byte {
	out = append(out, flag(perm&0o4 != 0, 'r'), flag(perm&0o2 != 0, 'w'))

	exec := perm&0o1 != 0

	switch {
	case special && exec:
		return append(out, letter)
	case special:
		return append(out, letter-'a'+'A')
	default:
		return append(out, flag(exec, 'x'))
	}
}

func flag(set bool, letter byte) byte {
	if set {
		return letter
	}

	return '-'
}

func typeChar(kind listing.Kind) byte {
	switch kind {
	case listing.KindNormal:
		return '-'
	case listing.KindDirectory, listing.KindArgDirectory:
		return 'd'
	case listing.KindSymbolicLink:
		return 'l'
	case listing.KindBlockDevice:
		return 'b'
	case listing.KindCharDevice:
		return 'c'
	case listing.KindFifo:
		return 'p'
	case listing.KindSocket:
		return 's'
	default:
		return '?'
	}
}
