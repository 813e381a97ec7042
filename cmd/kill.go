package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/mux"
)

var killCmd = &cobra.Command{
	Use:     "kill <name>",
	Aliases: []string{"kill-session"},
	Short:   "Destroy a session",
	Long: `Destroy the session with exactly this name.

Names are matched exactly, never by prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := getDeck()
		if err != nil {
			return err
		}

		err = d.KillSession(cmd.Context(), args[0])
		if errors.Is(err, mux.ErrSessionNotFound) {
			return fmt.Errorf("no session named %q: %w", args[0], err)
		}
		if err != nil {
			return fmt.Errorf("failed to kill session %q: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(killCmd)
}
