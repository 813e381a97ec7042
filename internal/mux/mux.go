// Package mux is the typed command surface over a running tmux server.
//
// Tmux turns each Command into exactly one tmux invocation, classifies the
// outcome into an *Error and decodes stdout into model records wrapped in a
// Response. Deck is the facade: one method per operation, forwarding to an
// Executor and unwrapping the Response variant that operation answers with.
//
// Nothing here caches or reconciles tmux state; the server is the source of
// truth and every call reads it afresh.
package mux

import (
	"context"

	"github.com/timvw/tmux-deck/internal/model"
)

// Executor runs a single Command. *Tmux is the production implementation.
type Executor interface {
	Name() string
	Exec(ctx context.Context, cmd Command) (Response, error)
}

// Multiplexer is the operation set exposed to callers.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// ListSessions returns every session on the server, in tmux's order.
	ListSessions(ctx context.Context) ([]model.Session, error)

	// ListWindows returns the windows of the named session.
	ListWindows(ctx context.Context, session string) ([]model.Window, error)

	// ListPanes returns the panes of window "session:window".
	ListPanes(ctx context.Context, session string, window uint64) ([]model.Pane, error)

	// CapturePane captures the visible content of pane "session:window.pane",
	// escape sequences included.
	CapturePane(ctx context.Context, session string, window, pane uint64) (model.PaneCapture, error)

	// NewSession creates a detached session and returns its descriptor.
	NewSession(ctx context.Context, name string) (model.Session, error)

	// KillSession destroys the named session.
	KillSession(ctx context.Context, name string) error

	// RenameSession renames session from to to.
	RenameSession(ctx context.Context, from, to string) error
}
