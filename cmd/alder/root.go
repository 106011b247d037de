package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "alder",
	Short: "Parse and reformat alder source files",
	Long: `alder is the frontend of an extensible language: operator
priorities, block delimiters, comment and text delimiters, and nested
sub-syntaxes all come from a syntax description file rather than being
built into the parser.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}
