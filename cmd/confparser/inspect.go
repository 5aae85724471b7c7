package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"confparser/internal/driver"
	"confparser/internal/ui"
)

var inspectProject string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Launch an interactive scope browser over a parsed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		result, err := driver.Run(args[0], driver.Options{ProjectDir: inspectProject})
		if err != nil {
			return err
		}
		if result.Diagnostics.HasErrors() {
			return fmt.Errorf("confparser: %q failed to parse, nothing to inspect", args[0])
		}

		model := ui.NewTreeModel(result.Snapshot)
		_, err = tea.NewProgram(model).Run()
		return err
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectProject, "project", "", "project directory to start confparser.toml discovery from")
}
