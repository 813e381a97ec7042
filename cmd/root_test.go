package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/config"
	"github.com/timvw/tmux-deck/internal/mux"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"0", 0, false},
		{"12", 12, false},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"one", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex("window", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q): error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", errors.New("boom"), 1},
		{"command failed", &mux.Error{Kind: mux.KindCommandFailed}, 1},
		{"validation", fmt.Errorf("wrapped: %w", &mux.Error{Kind: mux.KindValidationFailed}), 2},
		{"launch", &mux.Error{Kind: mux.KindLaunchFailed}, 3},
		{"decode", &mux.Error{Kind: mux.KindDecodeFailed}, 4},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// newFlagCmd returns a command carrying the root's persistent flags, parsed
// from args.
func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().AddFlagSet(rootCmd.PersistentFlags())
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("parsing %q: %v", args, err)
	}
	return c
}

func TestApplyFlags(t *testing.T) {
	c := config.Defaults()
	c.SocketPath = "/tmp/from-file.sock"

	applyFlags(newFlagCmd(t, "--socket-name", "work", "-o", "json"), c)

	if c.SocketName != "work" || c.SocketPath != "" {
		t.Errorf("socket: got name %q path %q, want flag to replace file selection", c.SocketName, c.SocketPath)
	}
	if c.Output != config.OutputJSON {
		t.Errorf("Output: got %q, want %q", c.Output, config.OutputJSON)
	}
	if c.LogLevel != "warn" {
		t.Errorf("LogLevel changed without flag: %q", c.LogLevel)
	}
}

func TestAttachHint(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		inside bool
		want   string
	}{
		{
			name: "default server",
			want: `attach with: 'tmux' attach-session -t '=work'`,
		},
		{
			name:   "socket name",
			mutate: func(c *config.Config) { c.SocketName = "deck" },
			want:   `attach with: 'tmux' -L 'deck' attach-session -t '=work'`,
		},
		{
			name:   "socket path inside tmux",
			mutate: func(c *config.Config) { c.SocketPath = "/tmp/deck.sock" },
			inside: true,
			want:   `switch with: 'tmux' -S '/tmp/deck.sock' switch-client -t '=work'`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Defaults()
			if tt.mutate != nil {
				tt.mutate(c)
			}
			if got := attachHint(c, "work", tt.inside); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAttachHintQuotesName(t *testing.T) {
	got := attachHint(config.Defaults(), `bob's "proj"`, false)
	want := `attach with: 'tmux' attach-session -t '=bob'"'"'s "proj"'`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
