package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/timvw/tmux-deck/internal/config"
	"github.com/timvw/tmux-deck/internal/mux"
	telem "github.com/timvw/tmux-deck/internal/otel"
	"github.com/timvw/tmux-deck/internal/render"
)

// Version is set at build time with -ldflags "-X github.com/timvw/tmux-deck/cmd.Version=...".
var Version = "dev"

var (
	// Global flags.
	flagConfig     string
	flagTmux       string
	flagSocketName string
	flagSocketPath string
	flagOutput     string
	flagLogLevel   string
)

var (
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *telem.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "tmux-deck",
	Short: "Typed command surface over a running tmux server",
	Long: `tmux-deck lists, inspects and manages tmux sessions, windows and panes.

Every command issues exactly one tmux invocation per record listing and
decodes tmux's output into typed records. Nothing is cached: the tmux server
is the source of truth.

Configuration is loaded from .tmux-deck.yaml / .tmux-deck.toml, then
TMUX_DECK_* environment variables, then flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// Flush spans and metrics whether or not the command failed.
	if serr := telemetry.Shutdown(context.WithoutCancel(ctx)); serr != nil {
		fmt.Fprintf(os.Stderr, "warning: otel shutdown failed: %v\n", serr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .tmux-deck.yaml or ~/.config/tmux-deck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagTmux, "tmux", "", "tmux binary (default: tmux from $PATH)")
	rootCmd.PersistentFlags().StringVarP(&flagSocketName, "socket-name", "L", "", "tmux server socket name (tmux -L)")
	rootCmd.PersistentFlags().StringVarP(&flagSocketPath, "socket-path", "S", "", "tmux server socket path (tmux -S)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: table, json (default: table)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
}

// setup resolves configuration (defaults -> file -> env -> flags), installs
// the logger and starts telemetry.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err = newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	slog.SetDefault(logger)
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", "file", cfg.ConfigFile)
	}

	telem.Version = Version
	telemetry, err = telem.Init(cmd.Context(), telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}
	return nil
}

func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("tmux") {
		c.TmuxPath = flagTmux
	}
	// A socket flag replaces whatever selection the file or env made.
	if flags.Changed("socket-name") {
		c.SocketName = flagSocketName
		c.SocketPath = ""
	}
	if flags.Changed("socket-path") {
		c.SocketPath = flagSocketPath
		if !flags.Changed("socket-name") {
			c.SocketName = ""
		}
	}
	if flags.Changed("output") {
		c.Output = flagOutput
	}
	if flags.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
}

// newLogger returns a slog logger writing through charmbracelet/log on stderr.
func newLogger(level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "tmux-deck",
		ReportTimestamp: lvl == log.DebugLevel,
	})
	return slog.New(handler), nil
}

// getDeck returns the facade over the configured tmux server.
func getDeck() (*mux.Deck, error) {
	path, err := mux.Detect(cfg.TmuxPath)
	if err != nil {
		return nil, err
	}
	var metrics *telem.Metrics
	if telemetry != nil {
		metrics = telemetry.Metrics
	}
	t := mux.NewTmux(
		mux.WithPath(path),
		mux.WithSocketName(cfg.SocketName),
		mux.WithSocketPath(cfg.SocketPath),
		mux.WithLogger(logger),
		mux.WithMetrics(metrics),
	)
	return mux.NewDeck(t), nil
}

func printer() *render.Printer {
	return render.New(os.Stdout, cfg.Output)
}

// parseIndex parses a window or pane index argument.
func parseIndex(what, s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s index %q: must be a non-negative integer", what, s)
	}
	return n, nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch mux.KindOf(err) {
	case mux.KindValidationFailed:
		return 2
	case mux.KindLaunchFailed:
		return 3
	case mux.KindDecodeFailed:
		return 4
	default:
		return 1
	}
}
