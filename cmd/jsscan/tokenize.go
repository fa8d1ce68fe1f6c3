package main

import (
	"fmt"
	"io"
	"os"

	"github.com/conduit-lang/jsscan/compiler/errors"
	"github.com/conduit-lang/jsscan/compiler/scanner"
	"github.com/conduit-lang/jsscan/internal/format"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	tokenizeJSON    bool
	tokenizeNoColor bool
)

func newTokenizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [file...]",
		Short: "Tokenize JavaScript files (or stdin) and print the tokens",
		Long: `Scans one or more JavaScript source files into their token streams and
prints one row per token. With no file arguments, reads a single source from
stdin. When multiple files are given, scan errors from every file are
collected and reported together once all files have been processed, rather
than stopping at the first failure.

Examples:
  jsscan tokenize app.js
  cat app.js | jsscan tokenize
  jsscan tokenize app.js lib.js --json`,
		Args: cobra.ArbitraryArgs,
		RunE: runTokenize,
	}

	cmd.Flags().BoolVar(&tokenizeJSON, "json", false, "emit JSON Lines instead of a colorized table")
	cmd.Flags().BoolVar(&tokenizeNoColor, "no-color", false, "disable colorized table output")

	return cmd
}

// namedSource is one file's content paired with a label used in error
// locations and multi-file summaries ("stdin" when read from standard input).
type namedSource struct {
	name string
	text string
}

func runTokenize(cmd *cobra.Command, args []string) error {
	sources, err := readSourceArgs(args)
	if err != nil {
		return err
	}

	recovery := errors.NewErrorRecovery()

	for _, src := range sources {
		items, scanErr := scanner.Tokenize(src.text)

		if tokenizeJSON {
			if err := format.WriteJSONLines(cmd.OutOrStdout(), src.text, items); err != nil {
				return err
			}
		} else {
			format.WriteTable(cmd.OutOrStdout(), src.text, items, tokenizeNoColor)
		}

		if scanErr == nil {
			continue
		}
		ce, ok := scanErr.(errors.CompilerError)
		if !ok {
			color.New(color.FgRed, color.Bold).Fprintf(cmd.ErrOrStderr(), "scan error in %s: %v\n", src.name, scanErr)
			continue
		}
		ce.Location.File = src.name
		recovery.Recover(ce)
	}

	if !recovery.HasErrors() {
		return nil
	}

	if tokenizeJSON {
		out, jsonErr := recovery.FormatAsJSON()
		if jsonErr != nil {
			return jsonErr
		}
		fmt.Fprintln(cmd.ErrOrStderr(), out)
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), recovery.FormatForTerminal())
	}

	cmd.SilenceUsage = true
	return recovery.FirstError()
}

// readSourceArgs reads each file named in args, or a single "stdin" source
// if args is empty.
func readSourceArgs(args []string) ([]namedSource, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []namedSource{{name: "stdin", text: string(data)}}, nil
	}

	sources := make([]namedSource, 0, len(args))
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		sources = append(sources, namedSource{name: name, text: string(data)})
	}
	return sources, nil
}
