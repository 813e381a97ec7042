// Package render prints tmux records for the CLI, either as aligned tables
// or as indented JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/timvw/tmux-deck/internal/config"
	"github.com/timvw/tmux-deck/internal/model"
)

// Printer writes records to w in one output format.
type Printer struct {
	w      io.Writer
	format string
}

// New creates a Printer. format is config.OutputTable or config.OutputJSON.
func New(w io.Writer, format string) *Printer {
	return &Printer{w: w, format: format}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// Sessions prints a session listing.
func (p *Printer) Sessions(sessions []model.Session) error {
	if p.format == config.OutputJSON {
		return p.json(sessions)
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ID,
			strconv.FormatUint(s.Index, 10),
			s.Name,
			yesNo(s.Attached),
			activity(s.Activity),
		})
	}
	return p.table([]string{"ID", "INDEX", "NAME", "ATTACHED", "ACTIVITY"}, rows)
}

// Session prints a single session descriptor, e.g. the result of new-session.
func (p *Printer) Session(s model.Session) error {
	if p.format == config.OutputJSON {
		return p.json(s)
	}
	return p.Sessions([]model.Session{s})
}

// Windows prints a window listing.
func (p *Printer) Windows(windows []model.Window) error {
	if p.format == config.OutputJSON {
		return p.json(windows)
	}
	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		rows = append(rows, []string{
			w.ID,
			strconv.FormatUint(w.Index, 10),
			w.Name,
			size(w.Width, w.Height),
			size(w.CellWidth, w.CellHeight),
			windowFlags(w),
			activity(w.Activity),
		})
	}
	return p.table([]string{"ID", "INDEX", "NAME", "SIZE", "CELL", "FLAGS", "ACTIVITY"}, rows)
}

// Panes prints a pane listing.
func (p *Printer) Panes(panes []model.Pane) error {
	if p.format == config.OutputJSON {
		return p.json(panes)
	}
	rows := make([][]string, 0, len(panes))
	for _, pn := range panes {
		rows = append(rows, []string{
			pn.ID,
			strconv.FormatUint(pn.Index, 10),
			size(pn.Width, pn.Height),
			yesNo(pn.Active),
			pn.CurrentCommand,
		})
	}
	return p.table([]string{"ID", "INDEX", "SIZE", "ACTIVE", "COMMAND"}, rows)
}

// Capture prints captured pane content. In table mode the buffer is written
// untouched so escape sequences reach the terminal.
func (p *Printer) Capture(c model.PaneCapture) error {
	if p.format == config.OutputJSON {
		return p.json(c)
	}
	_, err := io.WriteString(p.w, c.Buffer)
	return err
}

// Tree prints sessions with their windows and panes as an indented tree.
func (p *Printer) Tree(sessions []model.Session) error {
	if p.format == config.OutputJSON {
		return p.json(sessions)
	}
	root := tree.New().Enumerator(tree.RoundedEnumerator)
	for _, s := range sessions {
		st := tree.Root(sessionLabel(s)).Enumerator(tree.RoundedEnumerator)
		for _, w := range s.Windows {
			wt := tree.Root(windowLabel(w)).Enumerator(tree.RoundedEnumerator)
			for _, pn := range w.Panes {
				wt.Child(paneLabel(pn))
			}
			st.Child(wt)
		}
		root.Child(st)
	}
	_, err := fmt.Fprintln(p.w, root.String())
	return err
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(p.w, t.String())
	return err
}

func sessionLabel(s model.Session) string {
	label := fmt.Sprintf("%s %s", s.Name, dimStyle.Render(s.ID))
	if s.Attached {
		label += " (attached)"
	}
	return label
}

func windowLabel(w model.Window) string {
	label := fmt.Sprintf("%d: %s %s %s", w.Index, w.Name, dimStyle.Render(w.ID), size(w.Width, w.Height))
	if flags := windowFlags(w); flags != "-" {
		label += " [" + flags + "]"
	}
	return label
}

func paneLabel(pn model.Pane) string {
	label := fmt.Sprintf("%d: %s %s %s", pn.Index, pn.CurrentCommand, dimStyle.Render(pn.ID), size(pn.Width, pn.Height))
	if pn.Active {
		label += " *"
	}
	return label
}

func windowFlags(w model.Window) string {
	switch {
	case w.Zoomed && w.Marked:
		return "zoomed,marked"
	case w.Zoomed:
		return "zoomed"
	case w.Marked:
		return "marked"
	default:
		return "-"
	}
}

func size(w, h uint64) string {
	return fmt.Sprintf("%dx%d", w, h)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func activity(epoch uint64) string {
	if epoch == 0 {
		return "-"
	}
	return time.Unix(int64(epoch), 0).Format(time.DateTime)
}
