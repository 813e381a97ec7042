package mux

import "github.com/timvw/tmux-deck/internal/model"

// Response is the successful outcome of a Command. The set of variants is
// closed; kill-session and rename-session succeed with a nil Response.
type Response interface {
	isResponse()
}

// SessionsResponse answers ListSessions.
type SessionsResponse struct {
	Sessions []model.Session
}

// WindowsResponse answers ListWindows.
type WindowsResponse struct {
	Windows []model.Window
}

// PanesResponse answers ListPanes.
type PanesResponse struct {
	Panes []model.Pane
}

// CaptureResponse answers CapturePane.
type CaptureResponse struct {
	Capture model.PaneCapture
}

// NewSessionResponse answers NewSession with the created session.
type NewSessionResponse struct {
	Session model.Session
}

func (*SessionsResponse) isResponse()   {}
func (*WindowsResponse) isResponse()    {}
func (*PanesResponse) isResponse()      {}
func (*CaptureResponse) isResponse()    {}
func (*NewSessionResponse) isResponse() {}
