package mux

import (
	"strings"

	"github.com/timvw/tmux-deck/internal/model"
)

// Command is one tmux operation. The set of implementations is closed.
type Command interface {
	// Op is the tmux command name, e.g. "list-windows".
	Op() string
	// Target is the human-readable address the command acts on
	// ("session", "session:window", "session:window.pane"); empty when
	// the command is server-wide.
	Target() string

	validate() error
	args() []string
}

// exact prefixes a session name with "=" so tmux matches it exactly instead
// of treating it as a prefix or pattern.
func exact(target string) string {
	return "=" + target
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ListSessions lists every session on the server.
type ListSessions struct{}

func (ListSessions) Op() string     { return "list-sessions" }
func (ListSessions) Target() string { return "" }
func (ListSessions) validate() error {
	return nil
}
func (ListSessions) args() []string {
	return []string{"list-sessions", "-F", sessionFormat}
}

// ListWindows lists the windows of one session.
type ListWindows struct {
	Session string
}

func (ListWindows) Op() string       { return "list-windows" }
func (c ListWindows) Target() string { return c.Session }
func (c ListWindows) validate() error {
	if blank(c.Session) {
		return validationError(c.Op(), c.Target(), "session name is required")
	}
	return nil
}
func (c ListWindows) args() []string {
	return []string{"list-windows", "-t", exact(c.Session), "-F", windowFormat}
}

// ListPanes lists the panes of one window.
type ListPanes struct {
	Session string
	Window  uint64
}

func (ListPanes) Op() string       { return "list-panes" }
func (c ListPanes) Target() string { return model.WindowTarget(c.Session, c.Window) }
func (c ListPanes) validate() error {
	if blank(c.Session) {
		return validationError(c.Op(), c.Target(), "session name is required")
	}
	return nil
}
func (c ListPanes) args() []string {
	return []string{"list-panes", "-t", exact(c.Target()), "-F", paneFormat}
}

// CapturePane captures the visible content of one pane, escape sequences
// preserved and wrapped lines joined.
type CapturePane struct {
	Session string
	Window  uint64
	Pane    uint64
}

func (CapturePane) Op() string       { return "capture-pane" }
func (c CapturePane) Target() string { return model.PaneTarget(c.Session, c.Window, c.Pane) }
func (c CapturePane) validate() error {
	if blank(c.Session) {
		return validationError(c.Op(), c.Target(), "session name is required")
	}
	return nil
}
func (c CapturePane) args() []string {
	return []string{"capture-pane", "-e", "-p", "-J", "-t", exact(c.Target())}
}

// NewSession creates a detached session and prints its descriptor.
type NewSession struct {
	Name string
}

func (NewSession) Op() string       { return "new-session" }
func (c NewSession) Target() string { return c.Name }
func (c NewSession) validate() error {
	if blank(c.Name) {
		return validationError(c.Op(), c.Target(), "session name is required")
	}
	return nil
}
func (c NewSession) args() []string {
	return []string{"new-session", "-d", "-s", c.Name, "-P", "-F", sessionFormat}
}

// KillSession destroys a session.
type KillSession struct {
	Name string
}

func (KillSession) Op() string       { return "kill-session" }
func (c KillSession) Target() string { return c.Name }
func (c KillSession) validate() error {
	if blank(c.Name) {
		return validationError(c.Op(), c.Target(), "session name is required")
	}
	return nil
}
func (c KillSession) args() []string {
	return []string{"kill-session", "-t", exact(c.Name)}
}

// RenameSession renames session From to To.
type RenameSession struct {
	From string
	To   string
}

func (RenameSession) Op() string       { return "rename-session" }
func (c RenameSession) Target() string { return c.From }
func (c RenameSession) validate() error {
	if blank(c.From) {
		return validationError(c.Op(), c.Target(), "current session name is required")
	}
	if blank(c.To) {
		return validationError(c.Op(), c.Target(), "new session name is required")
	}
	return nil
}
func (c RenameSession) args() []string {
	return []string{"rename-session", "-t", exact(c.From), c.To}
}
