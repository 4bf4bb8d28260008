// Package adapter drives a game Session against a live peer. It owns the
// event loop that races inbound messages against the tick timer and applies
// the Session's effects to the transport and the display.
package adapter

import (
	"context"
	"fmt"
	"time"

	gerr "github.com/1ureka/salvo/internal/errors"
	"github.com/1ureka/salvo/internal/game"
	"github.com/1ureka/salvo/internal/protocol"
)

// Transport is the message link to the single remote peer. Send is best
// effort; Receive blocks until a message arrives or the link fails.
type Transport interface {
	Send(ctx context.Context, data []byte) error
	Receive(ctx context.Context) (peerID string, data []byte, err error)
}

// Sink is the write-only display surface.
type Sink interface {
	Draw(grid string)
	Log(entry string, severity game.Severity)
}

// inbound is one result of Transport.Receive, handed from the pump to the
// event loop.
type inbound struct {
	peer string
	data []byte
	err  error
}

// driver applies session effects. It is only used from the Run goroutine.
type driver struct {
	ctx  context.Context
	tr   Transport
	sess *game.Session
	sink Sink
}

// Run starts sess and processes events until the game ends, the transport
// fails to receive, or ctx is cancelled. Each event is handled to
// completion before the next one is taken.
//
// On a finished game Run returns its Result. A receive failure is returned
// as a TransportFailure error; cancellation returns ctx.Err().
func Run(ctx context.Context, tr Transport, sess *game.Session, sink Sink, interval time.Duration) (game.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan inbound)
	go pump(ctx, tr, in)

	d := &driver{ctx: ctx, tr: tr, sess: sess, sink: sink}
	d.apply(sess.Start())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !sess.Terminated() {
		select {
		case msg := <-in:
			if msg.err != nil {
				if ctx.Err() != nil {
					return game.ResultNone, ctx.Err()
				}
				err := gerr.Wrap(gerr.CodeTransportFailure, "failed to receive message", msg.err)
				sink.Log(err.Error(), game.SeverityError)
				return game.ResultNone, err
			}
			d.handle(msg)

		case <-ticker.C:
			d.apply(sess.Tick(ctx))

		case <-ctx.Done():
			return game.ResultNone, ctx.Err()
		}
	}

	return sess.Result(), nil
}

// pump moves inbound messages from the transport to the event loop. It
// never touches the session and stops after the first receive error.
func pump(ctx context.Context, tr Transport, in chan<- inbound) {
	for {
		peer, data, err := tr.Receive(ctx)
		select {
		case in <- inbound{peer: peer, data: data, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// handle decodes one inbound message and feeds it to the session. Protocol
// violations are already logged through the session's effects.
func (d *driver) handle(msg inbound) {
	m, err := protocol.Decode(msg.data)
	if err != nil {
		d.sink.Log(fmt.Sprintf("dropped message from %s: %v", peerName(msg.peer), err), game.SeverityError)
		return
	}

	effects, _ := d.sess.HandleMessage(m)
	d.apply(effects)
}

// apply executes effects in order.
func (d *driver) apply(effects []game.Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case game.Send:
			data, err := protocol.Encode(e.Message)
			if err != nil {
				d.sink.Log(fmt.Sprintf("failed to encode %s: %v", e.Message, err), game.SeverityError)
				continue
			}
			if err := d.tr.Send(d.ctx, data); err != nil {
				d.sink.Log(fmt.Sprintf("failed to send %s: %v", e.Message, err), game.SeverityError)
			}
		case game.Draw:
			d.sink.Draw(e.Grid)
		case game.Log:
			d.sink.Log(e.Entry, e.Severity)
		}
	}
}

func peerName(id string) string {
	if id == "" {
		return "peer"
	}
	return id
}
