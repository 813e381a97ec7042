package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/mux"
)

var renameCmd = &cobra.Command{
	Use:     "rename <old> <new>",
	Aliases: []string{"rename-session"},
	Short:   "Rename a session",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := args[0], args[1]

		d, err := getDeck()
		if err != nil {
			return err
		}

		err = d.RenameSession(cmd.Context(), from, to)
		switch {
		case errors.Is(err, mux.ErrSessionExists):
			return fmt.Errorf("cannot rename %q: a session named %q already exists: %w", from, to, err)
		case errors.Is(err, mux.ErrSessionNotFound):
			return fmt.Errorf("no session named %q: %w", from, err)
		case err != nil:
			return fmt.Errorf("failed to rename session %q: %w", from, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
