// Package browser is a read-only interactive view of the tmux server:
// sessions, then windows, then panes, then a pane's captured content.
//
// Every level is fetched through mux.Multiplexer when it is entered or
// refreshed; the browser never writes to tmux.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/tmux-deck/internal/model"
	"github.com/timvw/tmux-deck/internal/mux"
)

// level is the depth of the current view.
type level int

const (
	levelSessions level = iota
	levelWindows
	levelPanes
	levelCapture
)

func (l level) String() string {
	switch l {
	case levelSessions:
		return "sessions"
	case levelWindows:
		return "windows"
	case levelPanes:
		return "panes"
	default:
		return "capture"
	}
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc", "left", "h", "backspace"), key.WithHelp("esc", "back")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// messages carry the address they were requested for, so a reply that
// arrives after the user navigated elsewhere is dropped.
type sessionsMsg struct {
	sessions []model.Session
	err      error
}

type windowsMsg struct {
	session string
	windows []model.Window
	err     error
}

type panesMsg struct {
	session string
	window  uint64
	panes   []model.Pane
	err     error
}

type captureMsg struct {
	target  string
	capture model.PaneCapture
	err     error
}

// Browser runs the interactive browser.
type Browser struct {
	Mux   mux.Multiplexer
	Theme Theme
}

// browserModel implements tea.Model.
type browserModel struct {
	mux    mux.Multiplexer
	ctx    context.Context
	keys   keyMap
	styles styles

	level   level
	cursors [levelCapture]int

	sessions []model.Session
	windows  []model.Window
	panes    []model.Pane
	capture  model.PaneCapture

	// address of the open levels
	session string
	window  uint64
	pane    uint64

	preview viewport.Model

	width   int
	height  int
	loading bool
	message string
}

// Run starts the browser and blocks until the user quits.
func (b *Browser) Run(ctx context.Context) error {
	m := newModel(ctx, b.Mux, b.Theme)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModel(ctx context.Context, m mux.Multiplexer, theme Theme) *browserModel {
	return &browserModel{
		mux:     m,
		ctx:     ctx,
		keys:    defaultKeys(),
		styles:  newStyles(theme),
		preview: viewport.New(0, 0),
	}
}

func (m *browserModel) Init() tea.Cmd {
	m.loading = true
	return m.loadSessions()
}

func (m *browserModel) loadSessions() tea.Cmd {
	mx, ctx := m.mux, m.ctx
	return func() tea.Msg {
		sessions, err := mx.ListSessions(ctx)
		return sessionsMsg{sessions: sessions, err: err}
	}
}

func (m *browserModel) loadWindows(session string) tea.Cmd {
	mx, ctx := m.mux, m.ctx
	return func() tea.Msg {
		windows, err := mx.ListWindows(ctx, session)
		return windowsMsg{session: session, windows: windows, err: err}
	}
}

func (m *browserModel) loadPanes(session string, window uint64) tea.Cmd {
	mx, ctx := m.mux, m.ctx
	return func() tea.Msg {
		panes, err := mx.ListPanes(ctx, session, window)
		return panesMsg{session: session, window: window, panes: panes, err: err}
	}
}

func (m *browserModel) loadCapture(session string, window, pane uint64) tea.Cmd {
	mx, ctx := m.mux, m.ctx
	return func() tea.Msg {
		c, err := mx.CapturePane(ctx, session, window, pane)
		return captureMsg{target: model.PaneTarget(session, window, pane), capture: c, err: err}
	}
}

// reload fetches the current level again.
func (m *browserModel) reload() tea.Cmd {
	m.loading = true
	switch m.level {
	case levelSessions:
		return m.loadSessions()
	case levelWindows:
		return m.loadWindows(m.session)
	case levelPanes:
		return m.loadPanes(m.session, m.window)
	default:
		return m.loadCapture(m.session, m.window, m.pane)
	}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width
		m.preview.Height = max(msg.Height-3, 1)
		return m, nil

	case sessionsMsg:
		if m.level != levelSessions {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.message = errorMessage("list sessions", msg.err)
			m.sessions = nil
		} else {
			m.message = ""
			m.sessions = msg.sessions
		}
		m.clampCursor()
		return m, nil

	case windowsMsg:
		if m.level != levelWindows || msg.session != m.session {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.message = errorMessage("list windows", msg.err)
			m.windows = nil
		} else {
			m.message = ""
			m.windows = msg.windows
		}
		m.clampCursor()
		return m, nil

	case panesMsg:
		if m.level != levelPanes || msg.session != m.session || msg.window != m.window {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.message = errorMessage("list panes", msg.err)
			m.panes = nil
		} else {
			m.message = ""
			m.panes = msg.panes
		}
		m.clampCursor()
		return m, nil

	case captureMsg:
		if m.level != levelCapture || msg.target != model.PaneTarget(m.session, m.window, m.pane) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.message = errorMessage("capture", msg.err)
			m.preview.SetContent("")
			return m, nil
		}
		m.message = ""
		m.capture = msg.capture
		m.preview.SetContent(msg.capture.Buffer)
		m.preview.GotoBottom()
		return m, nil
	}
	return m, nil
}

func (m *browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keys.Back):
		if m.level > levelSessions {
			m.level--
			m.message = ""
			m.loading = false
		}
		return m, nil
	}

	if m.level == levelCapture {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursors[m.level] > 0 {
			m.cursors[m.level]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursors[m.level] < m.rows()-1 {
			m.cursors[m.level]++
		}
	case key.Matches(msg, m.keys.Enter):
		return m, m.open()
	}
	return m, nil
}

// open descends into the selected row.
func (m *browserModel) open() tea.Cmd {
	if m.rows() == 0 {
		return nil
	}
	i := m.cursors[m.level]
	switch m.level {
	case levelSessions:
		m.session = m.sessions[i].Name
		m.windows = nil
	case levelWindows:
		m.window = m.windows[i].Index
		m.panes = nil
	case levelPanes:
		m.pane = m.panes[i].Index
		m.preview.SetContent("")
	default:
		return nil
	}
	m.level++
	if m.level < levelCapture {
		m.cursors[m.level] = 0
	}
	m.message = ""
	return m.reload()
}

func (m *browserModel) rows() int {
	switch m.level {
	case levelSessions:
		return len(m.sessions)
	case levelWindows:
		return len(m.windows)
	case levelPanes:
		return len(m.panes)
	}
	return 0
}

func (m *browserModel) clampCursor() {
	if m.level == levelCapture {
		return
	}
	n := m.rows()
	if m.cursors[m.level] >= n {
		m.cursors[m.level] = max(n-1, 0)
	}
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("tmux-deck"))
	b.WriteString("  ")
	b.WriteString(m.styles.text.Render(m.breadcrumb()))
	if m.loading {
		b.WriteString("  ")
		b.WriteString(m.styles.loading.Render("loading..."))
	}
	b.WriteString("\n")

	if m.level == levelCapture {
		b.WriteString(m.preview.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewList())
	}

	if m.message != "" {
		b.WriteString(m.styles.err.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.viewHints())
	return b.String()
}

func (m *browserModel) breadcrumb() string {
	switch m.level {
	case levelSessions:
		return "sessions"
	case levelWindows:
		return m.session
	case levelPanes:
		return model.WindowTarget(m.session, m.window)
	default:
		return model.PaneTarget(m.session, m.window, m.pane)
	}
}

func (m *browserModel) viewList() string {
	var lines []string
	switch m.level {
	case levelSessions:
		for _, s := range m.sessions {
			line := fmt.Sprintf("%-20s %s", s.Name, m.styles.dim.Render(s.ID))
			if s.Attached {
				line += " " + m.styles.active.Render("attached")
			}
			lines = append(lines, line)
		}
	case levelWindows:
		for _, w := range m.windows {
			line := fmt.Sprintf("%d: %-16s %s %dx%d", w.Index, w.Name, m.styles.dim.Render(w.ID), w.Width, w.Height)
			if w.Zoomed {
				line += " " + m.styles.dim.Render("zoomed")
			}
			lines = append(lines, line)
		}
	case levelPanes:
		for _, p := range m.panes {
			line := fmt.Sprintf("%d: %-16s %s %dx%d", p.Index, p.CurrentCommand, m.styles.dim.Render(p.ID), p.Width, p.Height)
			if p.Active {
				line += " " + m.styles.active.Render("active")
			}
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		if m.loading {
			return "\n"
		}
		return m.styles.dim.Render("  No "+m.level.String()+".") + "\n"
	}

	var b strings.Builder
	for i, line := range lines {
		if i == m.cursors[m.level] {
			b.WriteString(m.styles.selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *browserModel) viewHints() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back, m.keys.Refresh, m.keys.Quit}
	if m.level == levelCapture {
		bindings = []key.Binding{m.keys.Back, m.keys.Refresh, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, m.styles.hintKey.Render(h.Key)+"="+m.styles.hintDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func errorMessage(what string, err error) string {
	return fmt.Sprintf("%s failed: %v", what, err)
}
