package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/config"
	"github.com/timvw/tmux-deck/internal/mux"
)

var newCmd = &cobra.Command{
	Use:     "new <name>",
	Aliases: []string{"new-session"},
	Short:   "Create a detached session",
	Long: `Create a detached session and print its descriptor.

The session is not attached; a hint on stderr shows how to reach it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := getDeck()
		if err != nil {
			return err
		}

		session, err := d.NewSession(cmd.Context(), args[0])
		if errors.Is(err, mux.ErrSessionExists) {
			return fmt.Errorf("session %q already exists: %w", args[0], err)
		}
		if err != nil {
			return fmt.Errorf("failed to create session %q: %w", args[0], err)
		}

		if err := printer().Session(session); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, attachHint(cfg, session.Name, mux.InsideTmux()))
		return nil
	},
}

// attachHint returns the tmux command that reaches session on the configured
// server, targeting it exactly.
func attachHint(c *config.Config, session string, insideTmux bool) string {
	args := []string{shellQuote(c.TmuxPath)}
	switch {
	case c.SocketName != "":
		args = append(args, "-L", shellQuote(c.SocketName))
	case c.SocketPath != "":
		args = append(args, "-S", shellQuote(c.SocketPath))
	}
	verb, sub := "attach with", "attach-session"
	if insideTmux {
		verb, sub = "switch with", "switch-client"
	}
	args = append(args, sub, "-t", shellQuote("="+session))
	return verb + ": " + strings.Join(args, " ")
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

func init() {
	rootCmd.AddCommand(newCmd)
}
