package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/model"
)

var panesCmd = &cobra.Command{
	Use:     "panes <session> <window>",
	Aliases: []string{"list-panes"},
	Short:   "List the panes of a window",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := parseIndex("window", args[1])
		if err != nil {
			return err
		}

		d, err := getDeck()
		if err != nil {
			return err
		}

		panes, err := d.ListPanes(cmd.Context(), args[0], window)
		if err != nil {
			return fmt.Errorf("failed to list panes of %q: %w", model.WindowTarget(args[0], window), err)
		}
		return printer().Panes(panes)
	},
}

func init() {
	rootCmd.AddCommand(panesCmd)
}
