package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"confparser/internal/lex"
	"confparser/internal/paren"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Print the token stream and parenthesization depth for each line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		text := lex.RemoveCarriageReturn(string(raw))
		out := cmd.OutOrStdout()
		for i, rawLine := range strings.Split(text, "\n") {
			line := lex.Trim(rawLine)
			if line == "" {
				continue
			}
			tokens := lex.Split(line)
			depth := paren.Parse(tokens)
			fmt.Fprintf(out, "%4d: %q\n", i+1, tokens)
			for d, groups := range depth {
				fmt.Fprintf(out, "      depth %d: %v\n", d, groups)
			}
		}
		return nil
	},
}
