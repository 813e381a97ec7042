package cmd

import (
	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/browser"
)

var flagTheme string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse sessions, windows and panes",
	Long: `Open a read-only terminal UI over the tmux server.

Drill down from sessions to windows to panes and preview a pane's content.
Keys: enter open, esc back, r refresh, q quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("theme") {
			cfg.Theme = flagTheme
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		d, err := getDeck()
		if err != nil {
			return err
		}

		b := &browser.Browser{
			Mux:   d,
			Theme: browser.ThemeByName(cfg.Theme),
		}
		return b.Run(cmd.Context())
	},
}

func init() {
	browseCmd.Flags().StringVar(&flagTheme, "theme", "", "color theme: dark, light (default: dark)")
	rootCmd.AddCommand(browseCmd)
}
