package mux

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/encoding/unicode"

	"github.com/timvw/tmux-deck/internal/model"
	telem "github.com/timvw/tmux-deck/internal/otel"
)

var tracer = otel.Tracer("tmux-deck")

// Tmux executes Commands by invoking the tmux binary once per call.
// It keeps no state between calls and is safe for concurrent use.
type Tmux struct {
	path    string
	global  []string
	runner  Runner
	logger  *slog.Logger
	metrics *telem.Metrics
}

// Option configures a Tmux.
type Option func(*Tmux)

// WithPath sets the tmux binary (default "tmux", resolved through $PATH).
func WithPath(path string) Option {
	return func(t *Tmux) {
		if path != "" {
			t.path = path
		}
	}
}

// WithSocketName selects a named server socket (tmux -L).
func WithSocketName(name string) Option {
	return func(t *Tmux) {
		if name != "" {
			t.global = []string{"-L", name}
		}
	}
}

// WithSocketPath selects a server socket by path (tmux -S).
func WithSocketPath(path string) Option {
	return func(t *Tmux) {
		if path != "" {
			t.global = []string{"-S", path}
		}
	}
}

// WithRunner replaces the process runner (for tests).
func WithRunner(r Runner) Option {
	return func(t *Tmux) { t.runner = r }
}

// WithLogger sets the logger used for per-invocation debug records.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tmux) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetrics records invocation counts and durations. Nil is allowed.
func WithMetrics(m *telem.Metrics) Option {
	return func(t *Tmux) { t.metrics = m }
}

// NewTmux creates a tmux command invoker.
func NewTmux(opts ...Option) *Tmux {
	t := &Tmux{
		path:   "tmux",
		runner: ExecRunner{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// Exec validates cmd, runs tmux once and decodes its output.
//
// Failures are always returned as *Error. Listing output is decoded
// atomically: one undecodable line fails the whole response.
func (t *Tmux) Exec(ctx context.Context, cmd Command) (Response, error) {
	ctx, span := tracer.Start(ctx, "tmux."+cmd.Op(),
		trace.WithAttributes(
			attribute.String("tmux.op", cmd.Op()),
			attribute.String("tmux.target", cmd.Target()),
		))
	defer span.End()

	start := time.Now()
	resp, err := t.exec(ctx, cmd)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	t.metrics.RecordCommand(ctx, cmd.Op(), outcome, elapsed)
	return resp, err
}

func (t *Tmux) exec(ctx context.Context, cmd Command) (Response, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	args := make([]string, 0, len(t.global)+8)
	args = append(args, t.global...)
	args = append(args, cmd.args()...)

	start := time.Now()
	res, err := t.runner.Run(ctx, t.path, args...)
	t.logger.DebugContext(ctx, "tmux exec",
		"op", cmd.Op(),
		"target", cmd.Target(),
		"exit", res.ExitCode,
		"duration", time.Since(start),
		"error", err)

	if err != nil {
		return nil, &Error{
			Kind:   KindLaunchFailed,
			Op:     cmd.Op(),
			Target: cmd.Target(),
			Stdout: string(res.Stdout),
			Stderr: string(res.Stderr),
			Err:    err,
		}
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("tmux.exit_code", res.ExitCode))
	if res.ExitCode != 0 {
		return nil, &Error{
			Kind:     KindCommandFailed,
			Op:       cmd.Op(),
			Target:   cmd.Target(),
			Stdout:   string(res.Stdout),
			Stderr:   string(res.Stderr),
			ExitCode: res.ExitCode,
		}
	}

	decodeErr := func(line string, err error) *Error {
		return &Error{
			Kind:   KindDecodeFailed,
			Op:     cmd.Op(),
			Target: cmd.Target(),
			Line:   line,
			Stdout: string(res.Stdout),
			Stderr: string(res.Stderr),
			Err:    err,
		}
	}

	switch c := cmd.(type) {
	case ListSessions:
		sessions, line, err := decodeLines(res.Stdout, model.DecodeSession)
		if err != nil {
			return nil, decodeErr(line, err)
		}
		return &SessionsResponse{Sessions: sessions}, nil

	case ListWindows:
		windows, line, err := decodeLines(res.Stdout, model.DecodeWindow)
		if err != nil {
			return nil, decodeErr(line, err)
		}
		return &WindowsResponse{Windows: windows}, nil

	case ListPanes:
		panes, line, err := decodeLines(res.Stdout, model.DecodePane)
		if err != nil {
			return nil, decodeErr(line, err)
		}
		return &PanesResponse{Panes: panes}, nil

	case CapturePane:
		return &CaptureResponse{Capture: model.PaneCapture{
			Session: c.Session,
			Window:  c.Window,
			Pane:    c.Pane,
			Buffer:  decodeText(res.Stdout),
		}}, nil

	case NewSession:
		sessions, line, err := decodeLines(res.Stdout, model.DecodeSession)
		if err != nil {
			return nil, decodeErr(line, err)
		}
		if len(sessions) != 1 {
			return nil, decodeErr(strings.TrimSpace(string(res.Stdout)),
				fmt.Errorf("expected one session descriptor, got %d", len(sessions)))
		}
		return &NewSessionResponse{Session: sessions[0]}, nil

	case KillSession, RenameSession:
		return nil, nil
	}
	panic(fmt.Sprintf("mux: unhandled command %T", cmd))
}

// decodeLines decodes every non-blank line of out, preserving order. On the
// first failure it returns the offending line and the decode error.
func decodeLines[T any](out []byte, decode func(string) (T, error)) ([]T, string, error) {
	records := []T{}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := decode(line)
		if err != nil {
			return nil, line, err
		}
		records = append(records, r)
	}
	return records, "", nil
}

// decodeText turns captured pane bytes into text. The UTF-8 decoder replaces
// each ill-formed sequence with U+FFFD and never reports an error.
func decodeText(b []byte) string {
	out, _ := unicode.UTF8.NewDecoder().Bytes(b)
	return string(out)
}
