package main

import (
	"fmt"
	"os"

	"github.com/conduit-lang/jsscan/internal/format"
	"github.com/spf13/cobra"
)

func newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Show a colorized, token-level diff between two JavaScript files",
		Long: `Tokenizes both files and prints a unified diff over the token stream
rather than raw text lines, so differences in whitespace or formatting that
don't change any token are not reported as changes.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}
}

func runDiff(cmd *cobra.Command, args []string) error {
	leftBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	rightBytes, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[1], err)
	}

	d, err := format.Diff(string(leftBytes), string(rightBytes))
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), d.String())
	if d.Changed {
		cmd.SilenceUsage = true
		os.Exit(1)
	}
	return nil
}
