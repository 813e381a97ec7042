package browser

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/tmux-deck/internal/model"
	"github.com/timvw/tmux-deck/internal/mux"
)

// fakeMux serves a fixed two-session server and records what was asked.
type fakeMux struct {
	calls      []string
	windowsErr error
}

func (f *fakeMux) Name() string { return "fake" }

func (f *fakeMux) ListSessions(context.Context) ([]model.Session, error) {
	f.calls = append(f.calls, "list-sessions")
	return []model.Session{
		{ID: "$0", Name: "alpha", Attached: true},
		{ID: "$1", Index: 1, Name: "beta"},
	}, nil
}

func (f *fakeMux) ListWindows(_ context.Context, session string) ([]model.Window, error) {
	f.calls = append(f.calls, "list-windows "+session)
	if f.windowsErr != nil {
		return nil, f.windowsErr
	}
	return []model.Window{
		{ID: "@1", Index: 0, Name: "editor", Width: 80, Height: 24},
		{ID: "@2", Index: 3, Name: "logs", Width: 80, Height: 24},
	}, nil
}

func (f *fakeMux) ListPanes(_ context.Context, session string, window uint64) ([]model.Pane, error) {
	f.calls = append(f.calls, "list-panes "+model.WindowTarget(session, window))
	return []model.Pane{{ID: "%5", Index: 1, Active: true, CurrentCommand: "tail"}}, nil
}

func (f *fakeMux) CapturePane(_ context.Context, session string, window, pane uint64) (model.PaneCapture, error) {
	f.calls = append(f.calls, "capture-pane "+model.PaneTarget(session, window, pane))
	return model.PaneCapture{Session: session, Window: window, Pane: pane, Buffer: "line one\nline two\n"}, nil
}

func (f *fakeMux) NewSession(context.Context, string) (model.Session, error) {
	return model.Session{}, errors.New("browser must not create sessions")
}

func (f *fakeMux) KillSession(context.Context, string) error {
	return errors.New("browser must not kill sessions")
}

func (f *fakeMux) RenameSession(context.Context, string, string) error {
	return errors.New("browser must not rename sessions")
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m *browserModel, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, _ = m.Update(cmd())
}

func press(m *browserModel, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, f *fakeMux) *browserModel {
	t.Helper()
	m := newModel(context.Background(), f, DarkTheme())
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	run(t, m, m.Init())
	return m
}

func TestInitListsSessions(t *testing.T) {
	m := newTestModel(t, &fakeMux{})

	if m.loading {
		t.Error("still loading after sessions arrived")
	}
	if len(m.sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(m.sessions))
	}
	view := m.View()
	for _, want := range []string{"alpha", "beta", "attached", "q=quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDrillDownToCapture(t *testing.T) {
	f := &fakeMux{}
	m := newTestModel(t, f)

	// beta -> window 3 -> pane 1
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	run(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	if m.level != levelWindows || m.session != "beta" {
		t.Fatalf("got level %v session %q", m.level, m.session)
	}

	press(m, keyRunes("j"))
	run(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	if m.level != levelPanes || m.window != 3 {
		t.Fatalf("got level %v window %d", m.level, m.window)
	}

	run(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	if m.level != levelCapture || m.capture.Pane != 1 {
		t.Fatalf("got level %v capture %+v", m.level, m.capture)
	}
	if !strings.Contains(m.View(), "line two") {
		t.Errorf("capture preview missing content:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "beta:3.1") {
		t.Errorf("breadcrumb missing pane target:\n%s", m.View())
	}

	want := []string{"list-sessions", "list-windows beta", "list-panes beta:3", "capture-pane beta:3.1"}
	if strings.Join(f.calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls: got %q, want %q", f.calls, want)
	}
}

func TestBackKeepsParentCursor(t *testing.T) {
	m := newTestModel(t, &fakeMux{})

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	run(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.level != levelSessions {
		t.Fatalf("got level %v, want sessions", m.level)
	}
	if m.cursors[levelSessions] != 1 {
		t.Errorf("cursor: got %d, want 1", m.cursors[levelSessions])
	}

	// Esc at the top level stays put.
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.level != levelSessions {
		t.Errorf("got level %v after esc at top", m.level)
	}
}

func TestStaleReplyIsDropped(t *testing.T) {
	m := newTestModel(t, &fakeMux{})

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter}) // open alpha
	press(m, tea.KeyMsg{Type: tea.KeyEsc})          // back before the reply
	_, _ = m.Update(cmd())

	if m.level != levelSessions {
		t.Fatalf("got level %v, want sessions", m.level)
	}
	if len(m.windows) != 0 {
		t.Errorf("stale windows applied: %+v", m.windows)
	}
}

func TestListingErrorIsShown(t *testing.T) {
	f := &fakeMux{windowsErr: &mux.Error{Kind: mux.KindCommandFailed, Op: "list-windows", Target: "alpha", ExitCode: 1, Stderr: "can't find session: alpha"}}
	m := newTestModel(t, f)

	run(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	view := m.View()
	if !strings.Contains(view, "list windows failed") || !strings.Contains(view, "can't find session") {
		t.Errorf("error not shown:\n%s", view)
	}
	if !strings.Contains(view, "No windows.") {
		t.Errorf("expected empty listing placeholder:\n%s", view)
	}
}

func TestRefreshReloadsCurrentLevel(t *testing.T) {
	f := &fakeMux{}
	m := newTestModel(t, f)
	run(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))

	f.calls = nil
	run(t, m, press(m, keyRunes("r")))
	if len(f.calls) != 1 || f.calls[0] != "list-windows alpha" {
		t.Errorf("calls: got %q", f.calls)
	}
}

func TestCursorBounds(t *testing.T) {
	m := newTestModel(t, &fakeMux{})

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursors[levelSessions] != 0 {
		t.Errorf("cursor moved above first row: %d", m.cursors[levelSessions])
	}
	for range 5 {
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursors[levelSessions] != 1 {
		t.Errorf("cursor moved past last row: %d", m.cursors[levelSessions])
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &fakeMux{})
	cmd := press(m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("light") != LightTheme() {
		t.Error("light theme not selected")
	}
	if ThemeByName("unknown") != DarkTheme() {
		t.Error("unknown name should fall back to dark")
	}
}
