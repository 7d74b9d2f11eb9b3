package cmd

import (
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse an Arx file and print the resulting AST",
	Long: `Parse an Arx program and print its Abstract Syntax Tree as an
indented tree, one line per node.

This is a thin wrapper over the same internal/astdump package that
backs "arxc --show-ast"; it exists standalone for scripting
convenience.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		return dumpAST(args[0], src)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
