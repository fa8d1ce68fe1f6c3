package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/conduit-lang/jsscan/internal/lspserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a Language Server Protocol server over stdin/stdout",
		Long: `Speaks LSP over stdin/stdout: textDocument/semanticTokens/full
classifies every token in an open document using the scanner, and
diagnostics are republished whenever a document opens or changes.
Intended to be launched by an editor, not run interactively.`,
		RunE: runLSP,
	}
}

func runLSP(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := lspserver.NewServer(logger)
	return srv.Run(ctx)
}
