// Command confparser is the CLI front end for the Conf configuration
// language: it parses .conf sources into a scope tree and exposes that
// tree through a handful of subcommands (run, tokenize, inspect, dump,
// version), the way the teacher's CLI exposes its compiler pipeline
// through one Cobra command per phase.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"confparser/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "confparser",
	Short: "Conf configuration language parser and toolkit",
	Long:  `confparser parses Conf source files into an object-model scope tree and inspects, dumps, or renders the result.`,
}

// Global flags, bound as persistent flags in main and read by individual
// subcommands through these package variables.
var (
	colorMode      string
	quiet          bool
	maxDiagnostics int
)

func main() {
	rootCmd.Version = version.Version

	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize diagnostic output (auto|on|off)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().IntVar(&maxDiagnostics, "max-diagnostics", 100, "maximum number of diagnostics to report")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func wantColor() bool {
	switch colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
