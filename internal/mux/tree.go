package mux

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/timvw/tmux-deck/internal/model"
)

// LoadTree lists every session and fills in its windows and their panes.
//
// Sessions are enriched concurrently, at most parallel at a time. Any failed
// listing fails the whole tree; no partially filled tree is returned.
func LoadTree(ctx context.Context, m Multiplexer, parallel int) ([]model.Session, error) {
	sessions, err := m.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	if parallel < 1 {
		parallel = 1
	}

	tree := make([]model.Session, len(sessions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, s := range sessions {
		g.Go(func() error {
			windows, err := m.ListWindows(gctx, s.Name)
			if err != nil {
				return fmt.Errorf("session %q: %w", s.Name, err)
			}
			filled := make([]model.Window, len(windows))
			for j, w := range windows {
				panes, err := m.ListPanes(gctx, s.Name, w.Index)
				if err != nil {
					return fmt.Errorf("window %q: %w", model.WindowTarget(s.Name, w.Index), err)
				}
				w.Panes = panes
				filled[j] = w
			}
			s.Windows = filled
			tree[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tree, nil
}
