package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:     "windows <session>",
	Aliases: []string{"list-windows"},
	Short:   "List the windows of a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := getDeck()
		if err != nil {
			return err
		}

		windows, err := d.ListWindows(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list windows of %q: %w", args[0], err)
		}
		return printer().Windows(windows)
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}
