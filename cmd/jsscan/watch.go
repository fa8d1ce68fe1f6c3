package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/conduit-lang/jsscan/internal/watch"
	"github.com/conduit-lang/jsscan/internal/wsbus"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Rescan JavaScript files on save and log each rescan",
		Long: `Watches a directory tree for .js/.mjs writes and reruns the scanner on
each changed file, logging the outcome of every rescan. Useful for
confirming edits tokenize the way you expect without running the full
HTTP service. Pair with 'jsscan serve --watch' to also broadcast rescans
to connected WebSocket clients.`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := wsbus.NewHub(ctx, logger)
	go hub.Run()

	watcher, err := watch.New(hub, logger)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	if err := watcher.AddDir(args[0]); err != nil {
		return fmt.Errorf("watching %s: %w", args[0], err)
	}

	color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)...\n", args[0])

	return watcher.Run(ctx)
}
