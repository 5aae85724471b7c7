package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confparser/internal/driver"
	"confparser/internal/facade"
)

var (
	dumpFormat  string
	dumpProject string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Parse a file and write its external facade snapshot to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := driver.Run(args[0], driver.Options{ProjectDir: dumpProject})
		if err != nil {
			return err
		}
		if result.Diagnostics.HasErrors() {
			return fmt.Errorf("confparser: %q failed to parse, nothing to dump", args[0])
		}

		switch dumpFormat {
		case "json":
			out, err := facade.MarshalJSON(result.Snapshot)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		case "msgpack":
			out, err := facade.MarshalBinary(result.Snapshot)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		default:
			return fmt.Errorf("unsupported format %q (must be json or msgpack)", dumpFormat)
		}
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "json", "output format (json|msgpack)")
	dumpCmd.Flags().StringVar(&dumpProject, "project", "", "project directory to start confparser.toml discovery from")
}
