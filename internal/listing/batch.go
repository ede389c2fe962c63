package listing

import (
	"sort"

	"golang.org/x/text/cases"
)

// SortKey selects the ordering of a batch.
type SortKey int

// Exported constants.
const (
	// SortByName - case-insensitive name order
	SortByName SortKey = iota
)

// Batch owns the entries of one listing block. Entries live in an arena in
// resolution order; the sorted view is a permutation of arena indexes.
type Batch struct {
	entries []Entry
	keys    []string
	order   []int
	folder  cases.Caser
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{folder: cases.Fold()}
}

// Add appends e to the arena and to the end of the view.
func (b *Batch) Add(e Entry) {
	b.order = append(b.order, len(b.entries))
	b.entries = append(b.entries, e)
	b.keys = append(b.keys, b.folder.String(e.Name))
}

// At returns the i-th entry of the view.
func (b *Batch) At(i int) *Entry {
	return &b.entries[b.order[i]]
}

// Entries returns the view as a slice of pointers into the arena.
func (b *Batch) Entries() []*Entry {
	view := make([]*Entry, len(b.order))
	for i, idx := range b.order {
		view[i] = &b.entries[idx]
	}

	return view
}

// Len returns the length of the view.
func (b *Batch) Len() int {
	return len(b.order)
}

// Reset empties the batch, keeping its storage.
func (b *Batch) Reset() {
	clear(b.entries)
	b.entries = b.entries[:0]
	b.keys = b.keys[:0]
	b.order = b.order[:0]
}

// Retain drops entries for which keep returns false from the view.
// The arena is untouched.
func (b *Batch) Retain(keep func(*Entry) bool) {
	kept := b.order[:0]
	for _, idx := range b.order {
		if keep(&b.entries[idx]) {
			kept = append(kept, idx)
		}
	}

	b.order = kept
}

// Sort orders the view by key. Equal keys keep their resolution order.
func (b *Batch) Sort(key SortKey) {
	switch key {
	case SortByName:
		sort.SliceStable(b.order, func(i, j int) bool {
			return b.keys[b.order[i]] < b.keys[b.order[j]]
		})
	}
}

// Widths returns the display width of every entry in the view.
func (b *Batch) Widths() []int {
	widths := make([]int, len(b.order))
	for i, idx := range b.order {
		widths[i] = b.entries[idx].Width
	}

	return widths
}
