package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/1ureka/salvo/internal/adapter"
	"github.com/1ureka/salvo/internal/config"
	"github.com/1ureka/salvo/internal/game"
	"github.com/1ureka/salvo/internal/transport"
)

// Identities of the two local players.
const (
	localFirstID  = "player-1"
	localSecondID = "player-2"
)

// RunLocal plays both sides in-process over a memory pipe. Only the first
// player is displayed; the result is reported from its side.
func RunLocal(ctx context.Context, cfg config.Config) (game.Result, error) {
	out, err := newSink(cfg, "Salvo — local")
	if err != nil {
		return game.ResultNone, err
	}
	defer out.Close()

	return runLocal(ctx, cfg, out, quiet{})
}

// runLocal drives both sessions with their own sinks until both finish.
func runLocal(ctx context.Context, cfg config.Config, first, second adapter.Sink) (game.Result, error) {
	a, b := transport.NewPipe(localFirstID, localSecondID)
	defer a.Close()

	sessA, err := newSession(cfg, localFirstID, localSecondID, cfg.Seed)
	if err != nil {
		return game.ResultNone, err
	}
	sessB, err := newSession(cfg, localSecondID, localFirstID, cfg.Seed+1)
	if err != nil {
		return game.ResultNone, err
	}

	var res game.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := adapter.Run(gctx, a, sessA, first, cfg.TickInterval)
		res = r
		return err
	})
	g.Go(func() error {
		_, err := adapter.Run(gctx, b, sessB, second, cfg.TickInterval)
		return err
	})

	return res, g.Wait()
}
