package listing

import (
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/joe/list-files/pkg/errors"
	"github.com/joe/list-files/pkg/filesystem"
)

// resolve turns name into an entry of the current batch and returns its
// 512-byte block count. The entry is listed as display, which differs from
// name only for caller arguments. kind and inode are hints from the
// directory reader; parent is zero for caller arguments. Metadata is read
// only when the listing needs it. A caller argument whose metadata cannot be
// read yields no entry; any other entry is kept without metadata.
func (r *run) resolve(name, display string, kind Kind, inode uint64, callerArgument bool, parent PendingEntry) int64 {
	full, shown := name, display
	if parent.Name != "" && !strings.HasPrefix(name, "/") {
		full = joinPath(parent.Name, name)
		shown = joinPath(parent.DisplayName, display)
	}

	if !utf8.ValidString(full) {
		r.report(pkgerrors.New(pkgerrors.KindPathEncoding, shown, nil), callerArgument)
		return 0
	}

	if !r.needsMetadata(kind, callerArgument) {
		r.batch.Add(NewEntry(name, kind, inode))
		return 0
	}

	meta, err := r.metadata(full)
	if err != nil {
		r.report(pkgerrors.New(pkgerrors.KindAccess, shown, err), callerArgument)

		if !callerArgument {
			r.batch.Add(NewEntry(name, kind, inode))
		}

		return 0
	}

	if !callerArgument {
		inode = meta.Inode
	}

	entry := NewEntry(display, KindFromMode(meta.Mode, callerArgument), inode)
	entry.Meta = meta

	if display != name {
		entry.path = name
	}

	if entry.Kind == KindSymbolicLink && r.opts.Long {
		r.resolveLinkTarget(&entry, full, shown, callerArgument)
	}

	if r.opts.Long {
		r.info.Fold(meta)
	}

	r.batch.Add(entry)

	return meta.Blocks
}

// needsMetadata reports whether an entry can not be built from its
// directory type hint alone.
func (r *run) needsMetadata(kind Kind, callerArgument bool) bool {
	switch {
	case callerArgument, r.opts.Long:
		return true
	case kind == KindUnknown, kind == KindDirectory, kind == KindNormal:
		return true
	default:
		return kind == KindSymbolicLink && r.opts.Dereference
	}
}

// metadata stats or lstats path depending on dereferencing.
func (r *run) metadata(path string) (*filesystem.Metadata, error) {
	if r.opts.Dereference {
		return r.fs.Stat(path)
	}

	return r.fs.Lstat(path)
}

// resolveLinkTarget records the target of the link at full, reported as
// shown. A relative target is resolved against the directory holding the
// link. When the target cannot be read its name is still recorded.
func (r *run) resolveLinkTarget(entry *Entry, full, shown string, callerArgument bool) {
	target, err := r.fs.ReadLink(full)
	if err != nil {
		r.report(pkgerrors.New(pkgerrors.KindReadLink, shown, err), callerArgument)
		return
	}

	entry.LinkName = target

	targetPath := target
	if !strings.HasPrefix(target, "/") {
		targetPath = joinPath(dirName(full), target)
	}

	linkMeta, err := r.fs.Stat(targetPath)
	if err != nil {
		r.report(pkgerrors.New(pkgerrors.KindReadLink, target, err), callerArgument)
		return
	}

	entry.LinkMeta = linkMeta
}
