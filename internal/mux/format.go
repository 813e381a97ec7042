package mux

import (
	"fmt"
	"strings"
)

// formatField is one entry of a -F object template. Quoted fields are
// rendered as JSON strings, the rest are substituted bare (numbers, flags).
// tmux already escapes backslashes in format output, so quoted fields only
// need their double quotes escaped.
type formatField struct {
	name   string
	quoted bool
}

// objectFormat builds a tmux -F template that prints one object literal per
// line, keyed by the tmux format variable names.
func objectFormat(fields ...formatField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		v := "#{" + f.name + "}"
		if f.quoted {
			v = `"` + quotedVar(f.name) + `"`
		}
		parts[i] = fmt.Sprintf("%q: %s", f.name, v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// quotedVar expands a tmux variable with every " replaced by \".
func quotedVar(name string) string {
	return `#{s/"/\\"/:` + name + `}`
}

var (
	sessionFormat = objectFormat(
		formatField{"session_id", true},
		formatField{"session_name", true},
		formatField{"session_attached", false},
		formatField{"session_activity", false},
	)

	windowFormat = objectFormat(
		formatField{"window_id", true},
		formatField{"window_index", false},
		formatField{"window_name", true},
		formatField{"window_activity", false},
		formatField{"window_width", false},
		formatField{"window_height", false},
		formatField{"window_cell_width", false},
		formatField{"window_cell_height", false},
		formatField{"window_zoomed_flag", false},
		formatField{"window_marked_flag", false},
	)

	paneFormat = objectFormat(
		formatField{"pane_id", true},
		formatField{"pane_index", false},
		formatField{"pane_width", false},
		formatField{"pane_height", false},
		formatField{"pane_active", false},
		formatField{"pane_current_command", true},
	)
)
