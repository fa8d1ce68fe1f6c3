package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/conduit-lang/jsscan/compiler/errors"
	"github.com/conduit-lang/jsscan/compiler/scanner"
	"github.com/conduit-lang/jsscan/internal/format"
	"github.com/spf13/cobra"
)

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-tokenize-print loop",
		Long: `Reads lines of JavaScript interactively, tokenizing each statement as
soon as braces balance, and prints its tokens. History is kept in
~/.jsscan_history.`,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, args []string) error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".jsscan_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "jsscan> ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "jsscan REPL (type 'exit' or Ctrl+D to quit)")

	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt("...     ")
		} else {
			rl.SetPrompt("jsscan> ")
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintln(rl.Stdout(), "(use 'exit' or Ctrl+D to quit)")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		replTokenize(rl.Stdout(), rl.Stderr(), source)
	}

	return nil
}

func replTokenize(stdout, stderr io.Writer, source string) {
	items, err := scanner.Tokenize(source)
	format.WriteTable(stdout, source, items, false)
	if err != nil {
		if ce, ok := err.(errors.CompilerError); ok {
			fmt.Fprint(stderr, ce.FormatForTerminal())
			return
		}
		fmt.Fprintf(stderr, "scan error: %v\n", err)
	}
}
