package listing

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	pkgerrors "github.com/joe/list-files/pkg/errors"
	"github.com/joe/list-files/pkg/filesystem"
)

// DefaultLineWidth is used when Options.LineWidth is not positive.
const DefaultLineWidth = 80

// Printer renders blocks of sorted entries.
type Printer interface {
	PrintGrid(w io.Writer, entries []*Entry, plan ColumnPlan) error
	PrintLong(w io.Writer, entries []*Entry, info FormatInfo) error
}

// Logger receives diagnostics and debug messages.
type Logger interface {
	Diagnostic(message string)
	LogDebug(message string)
}

// Options configures a Lister.
type Options struct {
	Long        bool
	Dereference bool
	Recursive   bool
	Direction   Direction
	Ignore      IgnoreMode
	// IgnorePatterns are never listed
	IgnorePatterns []string
	// HidePatterns are not listed unless Ignore shows dot entries
	HidePatterns []string
	// LineWidth is sampled once by the caller
	LineWidth int
	SortKey   SortKey
}

// Lister lists paths from a FileSystem.
type Lister struct {
	fs         filesystem.FileSystem
	printer    Printer
	logger     Logger
	opts       Options
	filter     *Filter
	enricher   pkgerrors.Enricher
	emitter    EventEmitter
	clock      TimeProvider
	cancelChan chan struct{}
	cancelOnce sync.Once
}

// NewLister creates a Lister.
func NewLister(fsys filesystem.FileSystem, printer Printer, logger Logger, opts Options) *Lister {
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultLineWidth
	}

	return &Lister{
		fs:         fsys,
		printer:    printer,
		logger:     logger,
		opts:       opts,
		filter:     NewFilter(opts.Ignore, opts.IgnorePatterns, opts.HidePatterns),
		enricher:   pkgerrors.NewEnricher(),
		clock:      RealTimeProvider{},
		cancelChan: make(chan struct{}),
	}
}

// SetEventEmitter sets the event emitter for progress events.
func (l *Lister) SetEventEmitter(emitter EventEmitter) {
	l.emitter = emitter
}

// SetTimeProvider replaces the clock used to time runs.
func (l *Lister) SetTimeProvider(clock TimeProvider) {
	l.clock = clock
}

// Cancel stops the run before the next queued directory is listed.
// Output already written stays. Safe to call from any goroutine.
func (l *Lister) Cancel() {
	l.cancelOnce.Do(func() {
		close(l.cancelChan)
	})
}

// Run lists paths (or "." when paths is empty) to w and returns the exit
// status. Failures are reported through the logger and never stop the run.
func (l *Lister) Run(w io.Writer, paths []string) pkgerrors.ExitStatus {
	targets := make([]filesystem.Target, len(paths))
	for i, p := range paths {
		targets[i] = filesystem.Target{Path: p, Display: p}
	}

	return l.RunTargets(w, targets)
}

// RunTargets is Run for arguments whose printed name differs from the path
// opened on the FileSystem. Headers, non-directory arguments and diagnostics
// use Display.
func (l *Lister) RunTargets(w io.Writer, targets []filesystem.Target) pkgerrors.ExitStatus {
	r := &run{
		Lister:  l,
		started: l.clock.Now(),
		out:     bufio.NewWriter(w),
		batch:   NewBatch(),
		guard:   NewCycleGuard(),
	}

	defer func() {
		_ = r.out.Flush()
	}()

	if len(targets) == 0 {
		r.queue.Queue(".", ".", true)
	}

	for _, t := range targets {
		display := t.Display
		if display == "" {
			display = t.Path
		}

		r.resolve(t.Path, display, KindUnknown, 0, true, PendingEntry{})
	}

	r.batch.Sort(l.opts.SortKey)
	r.extractDirs(PendingEntry{}, true)

	headers := true
	if r.batch.Len() > 0 {
		r.render("")
	} else if !r.queue.PeekHasSecond() {
		headers = false
	}

	for r.queue.HasMore() && r.writeErr == nil {
		if l.cancelled() {
			l.emit(RunCancelled{Pending: r.queue.Len()})
			return r.status
		}

		pending, _ := r.queue.Dequeue()
		if pending.IsLeaveMarker() {
			r.guard.Pop()
			continue
		}

		r.listDirectory(pending, headers || l.opts.Recursive)
		headers = true
	}

	l.emit(RunComplete{Stats: r.stats, Status: r.status, Elapsed: l.clock.Now().Sub(r.started)})

	return r.status
}

// cancelled reports whether Cancel has been called.
func (l *Lister) cancelled() bool {
	select {
	case <-l.cancelChan:
		return true
	default:
		return false
	}
}

// emit sends an event if an emitter is configured.
func (l *Lister) emit(event Event) {
	if l.emitter != nil {
		l.emitter.Emit(event)
	}
}

// run is the state of one Run call.
type run struct {
	*Lister

	out      *bufio.Writer
	batch    *Batch
	queue    PendingQueue
	guard    *CycleGuard
	info     FormatInfo
	status   pkgerrors.ExitStatus
	stats    Stats
	printed  bool
	writeErr error
	started  time.Time
}

// listDirectory reads one queued directory and renders its entries.
func (r *run) listDirectory(p PendingEntry, header bool) {
	scanner, err := r.fs.ReadDir(p.Name)
	if err != nil {
		r.skip(pkgerrors.New(pkgerrors.KindOpenDirectory, p.DisplayName, err), p)
		return
	}

	defer func() {
		_ = scanner.Close()
	}()

	if r.opts.Recursive {
		meta, err := r.fs.Stat(p.Name)
		if err != nil {
			r.skip(pkgerrors.New(pkgerrors.KindDeviceInode, p.DisplayName, err), p)
			return
		}

		if !r.guard.Enter(IdentityOf(meta)) {
			r.stats.Cycles++
			r.emit(CycleDetected{Path: p.DisplayName})
			r.report(pkgerrors.New(pkgerrors.KindAlreadyListed, p.DisplayName, nil), p.IsArgument)

			return
		}
	}

	r.batch.Reset()
	r.info.Reset()

	if header {
		r.separate()
		_, _ = fmt.Fprintf(r.out, "%s:\n", p.DisplayName)
	}

	r.printed = true
	r.stats.Directories++
	r.emit(DirectoryEntered{Path: p.DisplayName, Depth: r.guard.Depth()})

	var total int64

	if r.filter.Mode() == IgnoreMinimal {
		for _, dot := range []string{".", ".."} {
			if !r.filter.Ignored(dot) {
				total += r.resolve(dot, dot, KindDirectory, 0, false, p)
			}
		}
	}

	for {
		entry, ok := scanner.Next()
		if !ok {
			break
		}

		if isDotOrDotDot(entry.Name) {
			continue
		}

		if !utf8.ValidString(entry.Name) {
			r.report(pkgerrors.New(pkgerrors.KindPathEncoding, joinPath(p.DisplayName, entry.Name), nil), p.IsArgument)
			continue
		}

		if r.filter.Ignored(entry.Name) {
			continue
		}

		kind := KindUnknown
		if entry.Known {
			kind = KindFromMode(entry.Type, false)
		}

		total += r.resolve(entry.Name, entry.Name, kind, entry.Inode, false, p)
	}

	if err := scanner.Err(); err != nil {
		r.report(pkgerrors.New(pkgerrors.KindReadDirectory, p.DisplayName, err), p.IsArgument)
	}

	r.batch.Sort(r.opts.SortKey)

	if r.opts.Recursive {
		r.extractDirs(p, false)
	}

	if r.opts.Long {
		_, _ = fmt.Fprintf(r.out, "total %d\n", total)
	}

	if r.batch.Len() > 0 {
		r.render(p.DisplayName)
	}
}

// extractDirs queues the directories of the sorted batch in reverse order so
// they are listed in sorted order. Inside a directory (parent set) "." and
// ".." are never queued, relative names are joined to the parent, and in
// recursive mode a leave marker for the parent is queued first.
// Caller-named directories are then dropped from the batch.
func (r *run) extractDirs(parent PendingEntry, isArgument bool) {
	inside := parent.Name != ""
	if inside && r.opts.Recursive {
		r.queue.QueueLeaveMarker(parent.DisplayName)
	}

	for i := r.batch.Len() - 1; i >= 0; i-- {
		entry := r.batch.At(i)
		if !entry.IsDirectory() {
			continue
		}

		if inside && isDotOrDotDot(baseName(entry.Name)) {
			continue
		}

		name, display := entry.openPath(), entry.Name
		if inside && name[0] != '/' {
			name = joinPath(parent.Name, name)
			display = joinPath(parent.DisplayName, display)
		}

		r.queue.Queue(name, display, isArgument)
	}

	r.batch.Retain(func(e *Entry) bool {
		return e.Kind != KindArgDirectory
	})
}

// render hands the batch to the printer.
func (r *run) render(dir string) {
	entries := r.batch.Entries()
	columns := 0

	var err error
	if r.opts.Long {
		err = r.printer.PrintLong(r.out, entries, r.info)
	} else {
		plan := Layout(r.batch.Widths(), r.opts.LineWidth, r.opts.Direction)
		columns = plan.Columns
		err = r.printer.PrintGrid(r.out, entries, plan)
	}

	if dir == "" {
		r.printed = true
	}

	if err != nil {
		r.writeErr = err
		r.logger.Diagnostic("write error: " + pkgerrors.Cause(err))
		r.status = r.status.Raise(pkgerrors.SeriousTrouble)

		return
	}

	r.stats.Entries += len(entries)
	r.emit(BatchRendered{Path: dir, Entries: len(entries), Columns: columns})
}

// separate writes the blank line between blocks.
func (r *run) separate() {
	if r.printed {
		_ = r.out.WriteByte('\n')
	}
}

// skip reports a directory that could not be listed.
func (r *run) skip(err *pkgerrors.ListError, p PendingEntry) {
	r.emit(DirectorySkipped{Path: p.DisplayName, Err: err})
	r.report(err, p.IsArgument)
}

// report writes a diagnostic and raises the exit status. Pending output is
// flushed first so diagnostics appear after the entries listed before them.
func (r *run) report(err *pkgerrors.ListError, callerArgument bool) {
	if flushErr := r.out.Flush(); flushErr != nil && r.writeErr == nil {
		r.writeErr = flushErr
	}

	r.logger.Diagnostic(err.Error())

	if suggestions := pkgerrors.FormatSuggestions(r.enricher.Enrich(err, "")); suggestions != "" {
		r.logger.LogDebug(err.Kind.String() + " suggestions:\n" + suggestions)
	}

	r.status = r.status.Raise(pkgerrors.SeverityFor(callerArgument))
	r.stats.Errors++
}
