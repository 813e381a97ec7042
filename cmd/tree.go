package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/mux"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show every session with its windows and panes",
	Long: `List all sessions and fill in their windows and panes.

Sessions are listed concurrently, at most "parallel" at a time (config key
parallel or TMUX_DECK_PARALLEL). Any failed listing fails the whole tree.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := getDeck()
		if err != nil {
			return err
		}

		sessions, err := mux.LoadTree(cmd.Context(), d, cfg.Parallel)
		if err != nil {
			return fmt.Errorf("failed to load tree: %w", err)
		}
		return printer().Tree(sessions)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
