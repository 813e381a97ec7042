package model

import (
	"errors"
	"testing"
)

func TestDecodeSession(t *testing.T) {
	line := `{"session_id": "$3","session_name": "work",  "session_attached": 1, "session_activity": 1700000300}`
	s, err := DecodeSession(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "$3" {
		t.Errorf("ID: got %q, want %q", s.ID, "$3")
	}
	if s.Index != 3 {
		t.Errorf("Index: got %d, want 3 (derived from id)", s.Index)
	}
	if s.Name != "work" {
		t.Errorf("Name: got %q, want %q", s.Name, "work")
	}
	if !s.Attached {
		t.Error("Attached: got false, want true")
	}
	if s.Activity != 1700000300 {
		t.Errorf("Activity: got %d, want %d", s.Activity, 1700000300)
	}
	if s.Windows == nil || len(s.Windows) != 0 {
		t.Errorf("Windows: got %#v, want empty non-nil slice", s.Windows)
	}
}

func TestDecodeSession_ExplicitIndexWins(t *testing.T) {
	line := `{"session_id": "$9", "session_index": 2, "session_name": "a", "session_attached": 0, "session_activity": 1}`
	s, err := DecodeSession(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Index != 2 {
		t.Errorf("Index: got %d, want 2", s.Index)
	}
}

func TestDecodeSession_UnderivableIndex(t *testing.T) {
	line := `{"session_id": "main", "session_name": "a", "session_attached": 0, "session_activity": 1}`
	_, err := DecodeSession(line)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if de.Field != "index" {
		t.Errorf("Field: got %q, want %q", de.Field, "index")
	}
}

func TestDecodeSession_AttachedCountIsTrue(t *testing.T) {
	line := `{"session_id": "$1", "session_name": "a", "session_attached": 2, "session_activity": 1}`
	s, err := DecodeSession(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Attached {
		t.Error("Attached: two attached clients should decode as true")
	}
}

func TestDecodeWindow(t *testing.T) {
	line := `{"window_id": "@4", "window_index": 1, "window_name": "editor", "window_activity": 1700000400, "window_width": 200, "window_height": 50, "window_cell_width": 9, "window_cell_height": 18, "window_zoomed_flag": 0, "window_marked_flag": 1}`
	w, err := DecodeWindow(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Window{
		ID: "@4", Index: 1, Name: "editor", Activity: 1700000400,
		Width: 200, Height: 50, CellWidth: 9, CellHeight: 18,
		Zoomed: false, Marked: true,
	}
	if w.ID != want.ID || w.Index != want.Index || w.Name != want.Name || w.Activity != want.Activity ||
		w.Width != want.Width || w.Height != want.Height || w.CellWidth != want.CellWidth ||
		w.CellHeight != want.CellHeight || w.Zoomed != want.Zoomed || w.Marked != want.Marked {
		t.Errorf("got %+v, want %+v", w, want)
	}
	if w.Panes == nil || len(w.Panes) != 0 {
		t.Errorf("Panes: got %#v, want empty non-nil slice", w.Panes)
	}
}

func TestDecodeWindow_Aliases(t *testing.T) {
	line := `{"id": "@1", "index": "0", "name": "w", "activity": "5", "width": 80, "height": 24, "cell_width": 0, "cell_height": 0, "is_zoomed": true, "is_marked": false}`
	w, err := DecodeWindow(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Zoomed || w.Marked || w.Activity != 5 {
		t.Errorf("got %+v", w)
	}
}

func TestDecodePane(t *testing.T) {
	line := `{"pane_id": "%7", "pane_index": 0, "pane_width": 120, "pane_height": 40, "pane_active": 1, "pane_current_command": "vim"}`
	p, err := DecodePane(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "%7" || p.Index != 0 || p.Width != 120 || p.Height != 40 || !p.Active || p.CurrentCommand != "vim" {
		t.Errorf("got %+v", p)
	}
}

func TestDecodePane_FlagForms(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"int one", `1`, true},
		{"int zero", `0`, false},
		{"literal true", `true`, true},
		{"literal false", `false`, false},
		{"quoted one", `"1"`, true},
		{"quoted zero", `"0"`, false},
		{"quoted true", `"true"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := `{"pane_id": "%1", "pane_index": 0, "pane_width": 1, "pane_height": 1, "pane_active": ` + tt.value + `, "pane_current_command": "sh"}`
			p, err := DecodePane(line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Active != tt.want {
				t.Errorf("Active: got %v, want %v", p.Active, tt.want)
			}
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		decode    func(string) error
		line      string
		wantField string
	}{
		{
			name:      "missing required field",
			decode:    func(l string) error { _, err := DecodePane(l); return err },
			line:      `{"pane_id": "%1", "pane_index": 0, "pane_width": 1, "pane_height": 1, "pane_active": 1}`,
			wantField: "current_command",
		},
		{
			name:      "negative number",
			decode:    func(l string) error { _, err := DecodePane(l); return err },
			line:      `{"pane_id": "%1", "pane_index": -1, "pane_width": 1, "pane_height": 1, "pane_active": 1, "pane_current_command": "sh"}`,
			wantField: "index",
		},
		{
			name:      "fractional number",
			decode:    func(l string) error { _, err := DecodeWindow(l); return err },
			line:      `{"window_id": "@1", "window_index": 1.5, "window_name": "w", "window_activity": 1, "window_width": 1, "window_height": 1, "window_cell_width": 1, "window_cell_height": 1, "window_zoomed_flag": 0, "window_marked_flag": 0}`,
			wantField: "index",
		},
		{
			name:      "string where flag expected",
			decode:    func(l string) error { _, err := DecodeSession(l); return err },
			line:      `{"session_id": "$1", "session_name": "a", "session_attached": "maybe", "session_activity": 1}`,
			wantField: "attached",
		},
		{
			name:      "number where string expected",
			decode:    func(l string) error { _, err := DecodeSession(l); return err },
			line:      `{"session_id": 1, "session_name": "a", "session_attached": 0, "session_activity": 1}`,
			wantField: "id",
		},
		{
			name:   "truncated line",
			decode: func(l string) error { _, err := DecodeSession(l); return err },
			line:   `{"session_id": "$1", "session_name": "a"`,
		},
		{
			name:   "not an object",
			decode: func(l string) error { _, err := DecodeSession(l); return err },
			line:   `["$1", "a"]`,
		},
		{
			name:   "blank",
			decode: func(l string) error { _, err := DecodeWindow(l); return err },
			line:   `   `,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(tt.line)
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected ErrMalformedLine, got %v", err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if de.Field != tt.wantField {
				t.Errorf("Field: got %q, want %q", de.Field, tt.wantField)
			}
			if de.Line != tt.line {
				t.Errorf("Line: got %q, want %q", de.Line, tt.line)
			}
		})
	}
}
