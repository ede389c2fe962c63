// Package main is the entry point for the list-files application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joe/list-files/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	status := app.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(status)
}
