package mux

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/google/uuid"
)

func hasTmux() bool {
	_, err := Detect("")
	return err == nil
}

// newIsolatedDeck starts a private tmux server holding one "keeper" session,
// so killing the session under test never shuts the server down.
func newIsolatedDeck(t *testing.T) *Deck {
	t.Helper()
	if !hasTmux() {
		t.Skip("tmux not installed")
	}
	socket := "tmux-deck-test-" + uuid.NewString()
	tm := NewTmux(WithSocketName(socket))
	d := NewDeck(tm)

	ctx := context.Background()
	if _, err := d.NewSession(ctx, "keeper"); err != nil {
		t.Fatalf("starting keeper session: %v", err)
	}
	t.Cleanup(func() {
		_ = exec.Command("tmux", "-L", socket, "kill-server").Run()
	})
	return d
}

func countNamed(t *testing.T, d *Deck, name string) int {
	t.Helper()
	sessions, err := d.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	n := 0
	for _, s := range sessions {
		if s.Name == name {
			n++
		}
	}
	return n
}

func TestTmuxSessionRoundTrip(t *testing.T) {
	d := newIsolatedDeck(t)
	ctx := context.Background()

	created, err := d.NewSession(ctx, "spec-test")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if created.Name != "spec-test" {
		t.Errorf("descriptor name: got %q", created.Name)
	}
	if n := countNamed(t, d, "spec-test"); n != 1 {
		t.Fatalf("after create: found %d sessions named spec-test, want 1", n)
	}

	windows, err := d.ListWindows(ctx, "spec-test")
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(windows) == 0 {
		t.Fatal("new session has no windows")
	}
	panes, err := d.ListPanes(ctx, "spec-test", windows[0].Index)
	if err != nil {
		t.Fatalf("ListPanes: %v", err)
	}
	if len(panes) == 0 {
		t.Fatal("first window has no panes")
	}
	capture, err := d.CapturePane(ctx, "spec-test", windows[0].Index, panes[0].Index)
	if err != nil {
		t.Fatalf("CapturePane: %v", err)
	}
	if capture.Session != "spec-test" || capture.Pane != panes[0].Index {
		t.Errorf("capture identity: got %+v", capture)
	}

	if err := d.KillSession(ctx, "spec-test"); err != nil {
		t.Fatalf("KillSession: %v", err)
	}
	if n := countNamed(t, d, "spec-test"); n != 0 {
		t.Errorf("after kill: found %d sessions named spec-test, want 0", n)
	}
}

func TestTmuxRenameSession(t *testing.T) {
	d := newIsolatedDeck(t)
	ctx := context.Background()

	if _, err := d.NewSession(ctx, "a"); err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := d.RenameSession(ctx, "a", "b"); err != nil {
		t.Fatalf("RenameSession: %v", err)
	}
	if countNamed(t, d, "a") != 0 || countNamed(t, d, "b") != 1 {
		t.Error("rename did not take effect")
	}
}

func TestTmuxRenameCollision(t *testing.T) {
	d := newIsolatedDeck(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b"} {
		if _, err := d.NewSession(ctx, name); err != nil {
			t.Fatalf("NewSession(%s): %v", name, err)
		}
	}
	err := d.RenameSession(ctx, "a", "b")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
	var e *Error
	if errors.As(err, &e) && e.Stderr == "" {
		t.Error("expected tmux diagnostics in Stderr")
	}
}

func TestTmuxDuplicateSession(t *testing.T) {
	d := newIsolatedDeck(t)
	_, err := d.NewSession(context.Background(), "keeper")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
}

func TestTmuxUnknownSession(t *testing.T) {
	d := newIsolatedDeck(t)
	_, err := d.ListWindows(context.Background(), "no-such-session")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
}

func TestTmuxSessionNameWithQuotes(t *testing.T) {
	d := newIsolatedDeck(t)
	ctx := context.Background()
	name := `my "proj" \x`

	created, err := d.NewSession(ctx, name)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if created.Name != name {
		t.Errorf("descriptor name: got %q, want %q", created.Name, name)
	}
	if n := countNamed(t, d, name); n != 1 {
		t.Errorf("found %d sessions named %q, want 1", n, name)
	}
	if n := countNamed(t, d, "keeper"); n != 1 {
		t.Errorf("keeper missing from listing next to a quoted name")
	}
}
