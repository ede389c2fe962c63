package listing

// PendingEntry is a directory waiting to be listed, or a leave marker.
type PendingEntry struct {
	// Name is the path used to open the directory
	Name string
	// DisplayName is printed in the directory header
	DisplayName string
	// IsArgument marks directories named by the caller
	IsArgument bool

	leave bool
}

// IsLeaveMarker reports whether the entry only pops the cycle guard.
func (p PendingEntry) IsLeaveMarker() bool {
	return p.leave
}

// PendingQueue is the LIFO work list of directories awaiting traversal.
type PendingQueue struct {
	items []PendingEntry
}

// Queue pushes a directory.
func (q *PendingQueue) Queue(name, displayName string, isArgument bool) {
	if displayName == "" {
		displayName = name
	}

	q.items = append(q.items, PendingEntry{Name: name, DisplayName: displayName, IsArgument: isArgument})
}

// QueueLeaveMarker pushes a marker that is dequeued once every directory
// queued after it has been processed.
func (q *PendingQueue) QueueLeaveMarker(displayName string) {
	q.items = append(q.items, PendingEntry{DisplayName: displayName, leave: true})
}

// Dequeue pops the most recently queued entry.
func (q *PendingQueue) Dequeue() (PendingEntry, bool) {
	if len(q.items) == 0 {
		return PendingEntry{}, false
	}

	last := len(q.items) - 1
	entry := q.items[last]
	q.items[last] = PendingEntry{}
	q.items = q.items[:last]

	return entry, true
}

// HasMore reports whether anything is queued.
func (q *PendingQueue) HasMore() bool {
	return len(q.items) > 0
}

// Len returns the number of queued entries, leave markers included.
func (q *PendingQueue) Len() int {
	return len(q.items)
}

// PeekHasSecond reports whether at least two entries are queued.
func (q *PendingQueue) PeekHasSecond() bool {
	return len(q.items) > 1
}
