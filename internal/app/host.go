package app

import (
	"context"

	"github.com/1ureka/salvo/internal/config"
	"github.com/1ureka/salvo/internal/game"
	"github.com/1ureka/salvo/internal/signaling"
)

// RunHost starts the signaling server, waits for a client and plays one
// game against it.
func RunHost(ctx context.Context, cfg config.Config) (game.Result, error) {
	tr, err := signaling.EstablishAsHost(ctx, signaling.HostOptions{
		Addr:      cfg.ListenAddr,
		PIN:       cfg.PIN,
		LocalID:   cfg.PeerID,
		Transport: transportOptions(cfg),
	})
	if err != nil {
		return game.ResultNone, err
	}

	return play(ctx, cfg, tr, tr.RemoteID(), "Salvo — host")
}
