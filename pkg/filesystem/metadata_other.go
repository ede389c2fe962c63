//go:build !unix

package filesystem

import (
	"io/fs"
)

// metadataFromInfo extracts what portable os.FileInfo exposes.
// Ownership, link counts and device numbers are unavailable here.
func metadataFromInfo(info fs.FileInfo) *Metadata {
	return &Metadata{
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Links:   1,
	}
}
