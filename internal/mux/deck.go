package mux

import (
	"context"
	"fmt"

	"github.com/timvw/tmux-deck/internal/model"
)

// Deck implements Multiplexer on top of an Executor.
type Deck struct {
	exec Executor
}

var _ Multiplexer = (*Deck)(nil)

// NewDeck creates a facade over e.
func NewDeck(e Executor) *Deck {
	return &Deck{exec: e}
}

// Name returns the executor's multiplexer name.
func (d *Deck) Name() string {
	return d.exec.Name()
}

func (d *Deck) ListSessions(ctx context.Context) ([]model.Session, error) {
	resp, err := d.exec.Exec(ctx, ListSessions{})
	if err != nil {
		return nil, err
	}
	return expect[*SessionsResponse]("list-sessions", resp).Sessions, nil
}

func (d *Deck) ListWindows(ctx context.Context, session string) ([]model.Window, error) {
	resp, err := d.exec.Exec(ctx, ListWindows{Session: session})
	if err != nil {
		return nil, err
	}
	return expect[*WindowsResponse]("list-windows", resp).Windows, nil
}

func (d *Deck) ListPanes(ctx context.Context, session string, window uint64) ([]model.Pane, error) {
	resp, err := d.exec.Exec(ctx, ListPanes{Session: session, Window: window})
	if err != nil {
		return nil, err
	}
	return expect[*PanesResponse]("list-panes", resp).Panes, nil
}

func (d *Deck) CapturePane(ctx context.Context, session string, window, pane uint64) (model.PaneCapture, error) {
	resp, err := d.exec.Exec(ctx, CapturePane{Session: session, Window: window, Pane: pane})
	if err != nil {
		return model.PaneCapture{}, err
	}
	return expect[*CaptureResponse]("capture-pane", resp).Capture, nil
}

func (d *Deck) NewSession(ctx context.Context, name string) (model.Session, error) {
	resp, err := d.exec.Exec(ctx, NewSession{Name: name})
	if err != nil {
		return model.Session{}, err
	}
	return expect[*NewSessionResponse]("new-session", resp).Session, nil
}

func (d *Deck) KillSession(ctx context.Context, name string) error {
	_, err := d.exec.Exec(ctx, KillSession{Name: name})
	return err
}

func (d *Deck) RenameSession(ctx context.Context, from, to string) error {
	_, err := d.exec.Exec(ctx, RenameSession{From: from, To: to})
	return err
}

// expect unwraps the variant op must answer with. Any other variant means
// the executor broke its contract, which is a programming error.
func expect[R Response](op string, resp Response) R {
	r, ok := resp.(R)
	if !ok {
		panic(fmt.Sprintf("mux: %s answered with %T", op, resp))
	}
	return r
}
