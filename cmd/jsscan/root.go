package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information, set at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// newRootCommand builds the jsscan cobra root command and registers every
// subcommand.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsscan",
		Short: "A lexical scanner for JavaScript source text",
		Long: color.CyanString(`jsscan - a standalone JavaScript lexical scanner

Tokenizes ECMAScript source into (token, span) pairs: keywords, identifiers,
numbers, strings, template literals, regular expressions, and punctuators,
with history-based regex/division disambiguation and a template-literal
state machine for nested substitutions.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCommand())
	root.AddCommand(newTokenizeCommand())
	root.AddCommand(newDiffCommand())
	root.AddCommand(newReplCommand())
	root.AddCommand(newInitCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newLSPCommand())
	root.AddCommand(newWatchCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			title := color.New(color.FgCyan, color.Bold)
			value := color.New(color.FgWhite)
			title.Print("jsscan version: ")
			value.Println(Version)
			title.Print("git commit: ")
			value.Println(GitCommit)
			title.Print("build date: ")
			value.Println(BuildDate)
		},
	}
}

// execute runs the root command, rendering any returned error in red.
func execute() error {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
