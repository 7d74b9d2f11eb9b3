package cmd

import (
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize an Arx file and print the resulting tokens",
	Long: `Tokenize (lex) an Arx program and print the resulting tokens,
one per line with its kind and source position.

This is a thin wrapper over the same internal/astdump package that
backs "arxc --show-tokens"; it exists standalone for scripting
convenience.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		return dumpTokens(args[0], src)
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
}
