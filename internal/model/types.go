// Package model holds the records decoded from tmux output.
//
// Records are plain values built fresh from each tmux invocation. Nothing
// here holds a handle on the tmux server or is updated after decoding.
package model

import "fmt"

// Session represents a tmux session.
type Session struct {
	// ID is the tmux session id (e.g., "$3").
	ID string `json:"id"`
	// Index is the numeric session index.
	Index uint64 `json:"index"`
	// Name is the session name.
	Name string `json:"name"`
	// Attached reports whether at least one client is attached.
	Attached bool `json:"attached"`
	// Activity is the last activity time in unix epoch seconds.
	Activity uint64 `json:"activity"`
	// Windows is only populated by explicit enrichment (see mux.LoadTree).
	Windows []Window `json:"windows"`
}

// Window represents a tmux window inside a session.
type Window struct {
	ID         string `json:"id"`
	Index      uint64 `json:"index"`
	Name       string `json:"name"`
	Activity   uint64 `json:"activity"`
	Width      uint64 `json:"width"`
	Height     uint64 `json:"height"`
	CellWidth  uint64 `json:"cell_width"`
	CellHeight uint64 `json:"cell_height"`
	Zoomed     bool   `json:"zoomed"`
	Marked     bool   `json:"marked"`
	// Panes is only populated by explicit enrichment.
	Panes []Pane `json:"panes"`
}

// Pane represents a tmux pane inside a window.
type Pane struct {
	ID     string `json:"id"`
	Index  uint64 `json:"index"`
	Width  uint64 `json:"width"`
	Height uint64 `json:"height"`
	// Active is true for the single active pane of its window.
	Active bool `json:"active"`
	// CurrentCommand is the foreground command (e.g., "zsh", "vim").
	CurrentCommand string `json:"current_command"`
}

// PaneCapture is a snapshot of a pane's on-screen text.
type PaneCapture struct {
	Session string `json:"session"`
	Window  uint64 `json:"window"`
	Pane    uint64 `json:"pane"`
	// Buffer is the raw screen content, escape sequences included.
	Buffer string `json:"buffer"`
}

// Target returns the tmux address of the captured pane ("session:window.pane").
func (c PaneCapture) Target() string {
	return PaneTarget(c.Session, c.Window, c.Pane)
}

// WindowTarget formats a "session:window" address.
func WindowTarget(session string, window uint64) string {
	return fmt.Sprintf("%s:%d", session, window)
}

// PaneTarget formats a "session:window.pane" address.
func PaneTarget(session string, window, pane uint64) string {
	return fmt.Sprintf("%s:%d.%d", session, window, pane)
}
