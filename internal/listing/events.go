package listing

import (
	"time"

	pkgerrors "github.com/joe/list-files/pkg/errors"
)

// Event is the interface implemented by all listing events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// EmitterFunc adapts a function to EventEmitter.
type EmitterFunc func(Event)

// Emit calls f(event).
func (f EmitterFunc) Emit(event Event) {
	f(event)
}

// DirectoryEntered is emitted when a directory's entries are about to be read.
type DirectoryEntered struct {
	Path  string
	Depth int // active ancestors, recursive mode only
}

func (DirectoryEntered) isEvent() {}

// DirectorySkipped is emitted when a queued directory could not be listed.
type DirectorySkipped struct {
	Path string
	Err  error
}

func (DirectorySkipped) isEvent() {}

// CycleDetected is emitted when a directory is already on the descent chain.
type CycleDetected struct {
	Path string
}

func (CycleDetected) isEvent() {}

// BatchRendered is emitted after a block of entries was handed to the printer.
type BatchRendered struct {
	Path    string // empty for the caller's non-directory arguments
	Entries int
	Columns int // 0 in long format
}

func (BatchRendered) isEvent() {}

// RunCancelled is emitted when cancellation stops the run.
type RunCancelled struct {
	Pending int
}

func (RunCancelled) isEvent() {}

// RunComplete is emitted when the queue has been drained.
type RunComplete struct {
	Stats   Stats
	Status  pkgerrors.ExitStatus
	Elapsed time.Duration
}

func (RunComplete) isEvent() {}

// Stats counts what a run did.
type Stats struct {
	// Directories is the number of directories whose entries were read
	Directories int
	// Entries is the number of entries handed to the printer
	Entries int
	// Errors is the number of diagnostics reported
	Errors int
	// Cycles is the number of directories skipped as already listed
	Cycles int
}
