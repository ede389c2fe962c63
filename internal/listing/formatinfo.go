package listing

import (
	"strconv"

	"github.com/joe/list-files/pkg/filesystem"
)

// FormatInfo holds the widest value of each numeric long-format column in
// the current batch.
type FormatInfo struct {
	HardLink int
	User     int
	Group    int
	Size     int
	Major    int
	Minor    int
}

// Fold widens the columns to fit meta. Devices widen the major and minor
// columns, and the size column to fit "major, minor".
func (fi *FormatInfo) Fold(meta *filesystem.Metadata) {
	if meta == nil {
		return
	}

	fi.HardLink = max(fi.HardLink, digits(meta.Links))
	fi.User = max(fi.User, digits(uint64(meta.UID)))
	fi.Group = max(fi.Group, digits(uint64(meta.GID)))

	if meta.IsDevice() {
		fi.Major = max(fi.Major, digits(uint64(meta.Major)))
		fi.Minor = max(fi.Minor, digits(uint64(meta.Minor)))
		fi.Size = max(fi.Size, fi.Major+fi.Minor+len(", "))

		return
	}

	fi.Size = max(fi.Size, len(strconv.FormatInt(meta.Size, 10)))
}

// Reset clears all widths for the next directory.
func (fi *FormatInfo) Reset() {
	*fi = FormatInfo{}
}

func digits(n uint64) int {
	return len(strconv.FormatUint(n, 10))
}
