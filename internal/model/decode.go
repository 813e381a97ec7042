package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedLine is matched by every *DecodeError.
var ErrMalformedLine = errors.New("malformed line")

// DecodeError reports a line that could not be decoded into a record.
type DecodeError struct {
	Record string // "session", "window" or "pane"
	Field  string // internal field name; empty when the line itself is unparseable
	Line   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed %s line: %s: %q", e.Record, e.Reason, e.Line)
	}
	return fmt.Sprintf("malformed %s line: field %s: %s: %q", e.Record, e.Field, e.Reason, e.Line)
}

// Is lets errors.Is(err, ErrMalformedLine) match any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedLine
}

// aliasTable maps an internal field name to the external keys tmux output
// has used for it, in lookup order.
type aliasTable map[string][]string

var sessionFields = aliasTable{
	"id":       {"session_id", "id"},
	"index":    {"session_index", "index"},
	"name":     {"session_name", "name"},
	"attached": {"session_attached", "attached"},
	"activity": {"session_activity", "activity"},
}

var windowFields = aliasTable{
	"id":          {"window_id", "id"},
	"index":       {"window_index", "index"},
	"name":        {"window_name", "name"},
	"activity":    {"window_activity", "activity"},
	"width":       {"window_width", "width"},
	"height":      {"window_height", "height"},
	"cell_width":  {"window_cell_width", "cell_width"},
	"cell_height": {"window_cell_height", "cell_height"},
	"zoomed":      {"window_zoomed_flag", "window_zoomed", "zoomed", "is_zoomed"},
	"marked":      {"window_marked_flag", "window_marked", "marked", "is_marked"},
}

var paneFields = aliasTable{
	"id":              {"pane_id", "id"},
	"index":           {"pane_index", "index"},
	"width":           {"pane_width", "width"},
	"height":          {"pane_height", "height"},
	"active":          {"pane_active", "active"},
	"current_command": {"pane_current_command", "current_command", "command"},
}

// DecodeSession decodes one list-sessions output line.
//
// session_index is optional: tmux has no such format variable, so when it is
// absent the index is taken from the numeric part of the "$N" session id.
func DecodeSession(line string) (Session, error) {
	d, err := newLineDecoder("session", line, sessionFields)
	if err != nil {
		return Session{}, err
	}
	s := Session{
		ID:       d.str("id"),
		Name:     d.str("name"),
		Attached: d.flag("attached"),
		Activity: d.uint("activity"),
		Windows:  []Window{},
	}
	if d.has("index") {
		s.Index = d.uint("index")
	} else if d.err == nil {
		idx, perr := strconv.ParseUint(strings.TrimPrefix(s.ID, "$"), 10, 64)
		if perr != nil {
			d.fail("index", "missing and not derivable from session id")
		}
		s.Index = idx
	}
	if d.err != nil {
		return Session{}, d.err
	}
	return s, nil
}

// DecodeWindow decodes one list-windows output line.
func DecodeWindow(line string) (Window, error) {
	d, err := newLineDecoder("window", line, windowFields)
	if err != nil {
		return Window{}, err
	}
	w := Window{
		ID:         d.str("id"),
		Index:      d.uint("index"),
		Name:       d.str("name"),
		Activity:   d.uint("activity"),
		Width:      d.uint("width"),
		Height:     d.uint("height"),
		CellWidth:  d.uint("cell_width"),
		CellHeight: d.uint("cell_height"),
		Zoomed:     d.flag("zoomed"),
		Marked:     d.flag("marked"),
		Panes:      []Pane{},
	}
	if d.err != nil {
		return Window{}, d.err
	}
	return w, nil
}

// DecodePane decodes one list-panes output line.
func DecodePane(line string) (Pane, error) {
	d, err := newLineDecoder("pane", line, paneFields)
	if err != nil {
		return Pane{}, err
	}
	p := Pane{
		ID:             d.str("id"),
		Index:          d.uint("index"),
		Width:          d.uint("width"),
		Height:         d.uint("height"),
		Active:         d.flag("active"),
		CurrentCommand: d.str("current_command"),
	}
	if d.err != nil {
		return Pane{}, d.err
	}
	return p, nil
}

// lineDecoder pulls typed fields out of one object line. The first failure
// is kept in err and later lookups become no-ops.
type lineDecoder struct {
	record  string
	line    string
	aliases aliasTable
	values  map[string]gjson.Result
	err     *DecodeError
}

func newLineDecoder(record, line string, aliases aliasTable) (*lineDecoder, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return nil, &DecodeError{Record: record, Line: line, Reason: "not a valid object literal"}
	}
	obj := gjson.Parse(trimmed)
	if !obj.IsObject() {
		return nil, &DecodeError{Record: record, Line: line, Reason: "not an object"}
	}
	return &lineDecoder{
		record:  record,
		line:    line,
		aliases: aliases,
		values:  obj.Map(),
	}, nil
}

func (d *lineDecoder) fail(field, reason string) {
	if d.err == nil {
		d.err = &DecodeError{Record: d.record, Field: field, Line: d.line, Reason: reason}
	}
}

func (d *lineDecoder) lookup(field string) (gjson.Result, bool) {
	for _, key := range d.aliases[field] {
		if v, ok := d.values[key]; ok {
			return v, true
		}
	}
	return gjson.Result{}, false
}

func (d *lineDecoder) has(field string) bool {
	_, ok := d.lookup(field)
	return ok
}

func (d *lineDecoder) required(field string) (gjson.Result, bool) {
	if d.err != nil {
		return gjson.Result{}, false
	}
	v, ok := d.lookup(field)
	if !ok {
		d.fail(field, "missing")
		return gjson.Result{}, false
	}
	return v, true
}

func (d *lineDecoder) str(field string) string {
	v, ok := d.required(field)
	if !ok {
		return ""
	}
	if v.Type != gjson.String {
		d.fail(field, "expected string, got "+v.Type.String())
		return ""
	}
	return v.Str
}

// uint accepts bare or quoted non-negative integers.
func (d *lineDecoder) uint(field string) uint64 {
	v, ok := d.required(field)
	if !ok {
		return 0
	}
	var raw string
	switch v.Type {
	case gjson.Number:
		raw = v.Raw
	case gjson.String:
		raw = v.Str
	default:
		d.fail(field, "expected non-negative integer, got "+v.Type.String())
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		d.fail(field, fmt.Sprintf("expected non-negative integer, got %q", raw))
		return 0
	}
	return n
}

// flag accepts 0/1 integers (any non-zero count is true), JSON booleans, and
// the quoted forms of both.
func (d *lineDecoder) flag(field string) bool {
	v, ok := d.required(field)
	if !ok {
		return false
	}
	switch v.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		n, err := strconv.ParseUint(v.Raw, 10, 64)
		if err != nil {
			d.fail(field, fmt.Sprintf("expected flag, got %s", v.Raw))
			return false
		}
		return n != 0
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n != 0
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			d.fail(field, fmt.Sprintf("expected flag, got %q", v.Str))
			return false
		}
		return b
	default:
		d.fail(field, "expected flag, got "+v.Type.String())
		return false
	}
}
