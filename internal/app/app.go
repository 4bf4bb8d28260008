// Package app runs one game for each role: it establishes the link, builds
// the player's board and strategy, and drives the session until it ends.
package app

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/1ureka/salvo/internal/adapter"
	"github.com/1ureka/salvo/internal/board"
	"github.com/1ureka/salvo/internal/config"
	"github.com/1ureka/salvo/internal/display"
	"github.com/1ureka/salvo/internal/game"
	"github.com/1ureka/salvo/internal/strategy"
	"github.com/1ureka/salvo/internal/transport"
	"github.com/1ureka/salvo/internal/util"
)

// flushTimeout bounds how long the last messages may take to leave.
const flushTimeout = 3 * time.Second

// link is a connected Transport as seen by the runner.
type link interface {
	adapter.Transport
	Flush(ctx context.Context) error
	Close() error
}

// sink is a display that may hold the terminal until closed.
type sink interface {
	adapter.Sink
	Close()
}

// play runs one game over an established link and closes it afterwards.
func play(ctx context.Context, cfg config.Config, tr link, remoteID, title string) (game.Result, error) {
	defer tr.Close()

	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	util.StartStatsReporter(statsCtx, cfg.StatsInterval)

	sess, err := newSession(cfg, cfg.PeerID, remoteID, cfg.Seed)
	if err != nil {
		return game.ResultNone, err
	}

	out, err := newSink(cfg, title)
	if err != nil {
		return game.ResultNone, err
	}
	res, runErr := adapter.Run(ctx, tr, sess, out, cfg.TickInterval)
	out.Close()

	// Let the final reply and EndGame leave before the link goes down.
	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := tr.Flush(flushCtx); err != nil {
		util.LogDebug("flush before close: %v", err)
	}

	return res, runErr
}

// newSession builds a random board and the configured strategy for one
// player. Board layout and random targeting share one seeded source.
func newSession(cfg config.Config, localID, remoteID string, seed uint64) (*game.Session, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x5a17))

	own, err := board.NewPlayerBoard(cfg.GridSize, cfg.Fleet, rng)
	if err != nil {
		return nil, err
	}

	var strat strategy.Strategy = strategy.NewRandom(rng)
	if cfg.Strategy == config.StrategyModel {
		strat = strategy.NewModel(strategy.ModelConfig{
			ResponsesURL: cfg.LLM.URL,
			APIKey:       cfg.LLM.APIKey,
			Model:        cfg.LLM.Model,
			Timeout:      cfg.LLM.Timeout,
		})
	}

	return game.NewSession(game.Config{
		LocalID:  localID,
		RemoteID: remoteID,
		TieBreak: cfg.TieBreak,
	}, own, strat), nil
}

// newSink picks the full-screen view or plain output. While the full-screen
// view owns the terminal, log lines are discarded.
func newSink(cfg config.Config, title string) (sink, error) {
	if cfg.Plain {
		return plainSink{display.NewPlain(os.Stdout, title)}, nil
	}

	term, err := display.NewTerminal(title, cfg.Debug)
	if err != nil {
		return nil, err
	}
	prev := util.SetLogWriter(io.Discard)
	return terminalSink{Terminal: term, logs: prev}, nil
}

type plainSink struct{ *display.Plain }

func (plainSink) Close() {}

type terminalSink struct {
	*display.Terminal
	logs io.Writer
}

func (s terminalSink) Close() {
	s.Terminal.Close()
	util.SetLogWriter(s.logs)
}

// quiet drops everything; used for the undisplayed local player.
type quiet struct{}

func (quiet) Draw(string)               {}
func (quiet) Log(string, game.Severity) {}

func transportOptions(cfg config.Config) transport.Options {
	return transport.Options{
		ICEServers: cfg.STUNServers,
		SendRate:   cfg.SendRate,
		SendBurst:  cfg.SendBurst,
	}
}
