package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"confparser/internal/diag"
	"confparser/internal/diagfmt"
	"confparser/internal/driver"
	"confparser/internal/facade"
)

var (
	runCharset string
	runProject string
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Parse a Conf file and print the resulting scope tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := driver.Run(args[0], driver.Options{
			ProjectDir:     runProject,
			Charset:        runCharset,
			MaxDiagnostics: maxDiagnostics,
		})
		if err != nil {
			return err
		}

		if !quiet {
			printTree(cmd.OutOrStdout(), result.Snapshot, 0)
		}

		if result.Diagnostics.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Diagnostics, result.Files, diagfmt.PrettyOpts{
				Color:     wantColor(),
				Context:   1,
				ShowNotes: true,
				ShowFixes: true,
			})
		}
		if result.Diagnostics.HasErrors() {
			return fmt.Errorf("confparser: %d error(s) reported", countSeverity(result.Diagnostics, diag.SevError))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runCharset, "charset", "", "override the project's charset (narrow|wide)")
	runCmd.Flags().StringVar(&runProject, "project", "", "project directory to start confparser.toml discovery from")
}

func countSeverity(bag *diag.Bag, sev diag.Severity) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// printTree renders a facade.Node as an indented plain-text tree, the
// non-interactive counterpart to internal/ui's browser.
func printTree(w io.Writer, n facade.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s %s", indent, n.Name, n.Kind)
	if n.TypeName != "" {
		line += fmt.Sprintf(" : %s", n.TypeName)
	}
	switch n.PayloadKind {
	case "string":
		line += fmt.Sprintf(" = %q", n.StringValue)
	case "int":
		line += fmt.Sprintf(" = %d", n.IntValue)
	case "float":
		line += fmt.Sprintf(" = %g", n.FloatValue)
	}
	fmt.Fprintln(w, line)
	for _, c := range n.Children {
		printTree(w, c, depth+1)
	}
}
