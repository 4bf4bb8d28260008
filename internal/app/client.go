package app

import (
	"context"

	"github.com/1ureka/salvo/internal/config"
	"github.com/1ureka/salvo/internal/game"
	"github.com/1ureka/salvo/internal/signaling"
)

// RunClient dials the host's signaling server at cfg.WSURL and plays one
// game against the host.
func RunClient(ctx context.Context, cfg config.Config) (game.Result, error) {
	tr, err := signaling.EstablishAsClient(ctx, cfg.WSURL, cfg.PeerID, transportOptions(cfg))
	if err != nil {
		return game.ResultNone, err
	}

	return play(ctx, cfg, tr, tr.RemoteID(), "Salvo — client")
}
