// Package app wires configuration, the filesystem backend, the listing
// engine and the printer into one run of list-files.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/joe/list-files/internal/config"
	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/internal/logger"
	"github.com/joe/list-files/internal/render"
	"github.com/joe/list-files/internal/terminal"
	pkgerrors "github.com/joe/list-files/pkg/errors"
	"github.com/joe/list-files/pkg/filesystem"
)

// Program is the name diagnostics are prefixed with.
const Program = "list-files"

// Run executes list-files with args (without the program name) and
// returns the process exit status. Cancelling ctx stops the listing before
// the next directory.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseArgs(args, stdout)
	if errors.Is(err, config.ErrExit) {
		return int(pkgerrors.Success)
	}

	if err != nil {
		logger.NewConsoleLogger(stderr, Program, "warn").Diagnostic(err.Error())
		return int(pkgerrors.SeriousTrouble)
	}

	log := logger.NewConsoleLogger(stderr, Program, cfg.LogLevel)

	fsys, targets, closer, err := filesystem.CreateFileSystem(cfg.Paths)
	if errors.Is(err, filesystem.ErrConnect) {
		log.LogError(err.Error())
		return int(pkgerrors.SeriousTrouble)
	}

	if err != nil {
		log.Diagnostic(err.Error())
		return int(pkgerrors.SeriousTrouble)
	}

	if closer != nil {
		defer closer()
	}

	lister := listing.NewLister(fsys, render.NewPrinter(render.ProfileFor(cfg.Color, stdout)), log, Options(cfg, stdout))
	lister.SetEventEmitter(logEvents(log))

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			lister.Cancel()
		case <-done:
		}
	}()

	return int(lister.RunTargets(stdout, targets))
}

// Options translates the configuration into listing options. The line
// width is sampled once, from the flag or from the terminal on stdout.
func Options(cfg *config.Config, stdout io.Writer) listing.Options {
	direction := listing.DownColumns
	if cfg.Across {
		direction = listing.AcrossRows
	}

	return listing.Options{
		Long:           cfg.Long,
		Dereference:    cfg.Dereference,
		Recursive:      cfg.Recursive,
		Direction:      direction,
		Ignore:         listing.IgnoreModeFor(cfg.All, cfg.AlmostAll),
		IgnorePatterns: cfg.Ignore,
		HidePatterns:   cfg.Hide,
		LineWidth:      lineWidth(cfg.Width, stdout),
		SortKey:        listing.SortByName,
	}
}

func lineWidth(flag int, stdout io.Writer) int {
	if flag > 0 {
		return flag
	}

	if f, ok := stdout.(*os.File); ok {
		return terminal.Width(int(f.Fd())) //nolint:gosec // File descriptors fit in int
	}

	return terminal.DefaultWidth
}
