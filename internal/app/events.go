package app

import (
	"fmt"
	"time"

	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/internal/logger"
)

// logEvents adapts listing events to leveled log lines.
func logEvents(log *logger.ConsoleLogger) listing.EventEmitter {
	return listing.EmitterFunc(func(event listing.Event) {
		switch ev := event.(type) {
		case listing.DirectoryEntered:
			if log.Enabled("trace") {
				log.LogTrace(fmt.Sprintf("entering %s (depth %d)", ev.Path, ev.Depth))
			}
		case listing.BatchRendered:
			if log.Enabled("trace") {
				log.LogTrace(fmt.Sprintf("rendered %d entries of %q in %d columns", ev.Entries, ev.Path, ev.Columns))
			}
		case listing.DirectorySkipped:
			log.LogInfo(fmt.Sprintf("skipped %s: %v", ev.Path, ev.Err))
		case listing.CycleDetected:
			log.LogDebug("cycle at " + ev.Path)
		case listing.RunCancelled:
			log.LogWarn(fmt.Sprintf("cancelled with %d queued, output is incomplete", ev.Pending))
		case listing.RunComplete:
			log.LogDebug(fmt.Sprintf("listed %d directories and %d entries in %s, %d errors, %d cycles, status %s",
				ev.Stats.Directories, ev.Stats.Entries, ev.Elapsed.Round(time.Millisecond),
				ev.Stats.Errors, ev.Stats.Cycles, ev.Status))
		}
	})
}
