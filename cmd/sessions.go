package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/model"
	"github.com/timvw/tmux-deck/internal/mux"
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"ls", "list-sessions"},
	Short:   "List all sessions on the tmux server",
	Long: `List every session on the tmux server, in tmux's order.

When no server is running the listing is empty and a warning is printed
on stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := getDeck()
		if err != nil {
			return err
		}

		sessions, err := d.ListSessions(cmd.Context())
		if errors.Is(err, mux.ErrNoServer) {
			fmt.Fprintf(os.Stderr, "warning: no tmux server running\n")
			sessions, err = []model.Session{}, nil
		}
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		return printer().Sessions(sessions)
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
