package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/model"
)

var captureCmd = &cobra.Command{
	Use:   "capture <session> <window> <pane>",
	Short: "Capture the visible content of a pane",
	Long: `Capture the visible content of a tmux pane and print it to stdout.

Escape sequences are kept, so colors render in a terminal. Invalid UTF-8
in the pane is replaced rather than rejected. With --output json the
capture is printed together with its pane address.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := parseIndex("window", args[1])
		if err != nil {
			return err
		}
		pane, err := parseIndex("pane", args[2])
		if err != nil {
			return err
		}

		d, err := getDeck()
		if err != nil {
			return err
		}

		capture, err := d.CapturePane(cmd.Context(), args[0], window, pane)
		if err != nil {
			return fmt.Errorf("failed to capture pane %q: %w", model.PaneTarget(args[0], window, pane), err)
		}
		return printer().Capture(capture)
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
