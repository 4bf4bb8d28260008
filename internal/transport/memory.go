package transport

import (
	"context"
	"sync"
)

// Pipe is one end of an in-memory, ordered and lossless message link. It
// satisfies the same Send / Receive contract as Transport and is used for
// local self-play and tests.
type Pipe struct {
	id    string
	peer  *Pipe
	inbox chan []byte
	done  chan struct{}
	once  *sync.Once
}

// NewPipe creates a linked pair of pipes. Messages sent on one end are
// received on the other, tagged with the sender's id. Closing either end
// closes both.
func NewPipe(aID, bID string) (a, b *Pipe) {
	done := make(chan struct{})
	once := &sync.Once{}
	a = &Pipe{id: aID, inbox: make(chan []byte, recvBufferSize), done: done, once: once}
	b = &Pipe{id: bID, inbox: make(chan []byte, recvBufferSize), done: done, once: once}
	a.peer = b
	b.peer = a
	return a, b
}

// Send delivers a copy of data to the peer's inbox.
func (p *Pipe) Send(ctx context.Context, data []byte) error {
	msg := make([]byte, len(data))
	copy(msg, data)

	select {
	case <-p.done:
		return errClosed
	default:
	}

	select {
	case p.peer.inbox <- msg:
		return nil
	case <-p.done:
		return errClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive returns the next message sent by the peer. Messages already
// queued are still delivered after Close.
func (p *Pipe) Receive(ctx context.Context) (string, []byte, error) {
	select {
	case data := <-p.inbox:
		return p.peer.id, data, nil
	default:
	}

	select {
	case data := <-p.inbox:
		return p.peer.id, data, nil
	case <-p.done:
		return "", nil, errClosed
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}
}

// Close shuts down both ends. Safe to call multiple times.
func (p *Pipe) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}

// Done returns a channel that is closed when either end is closed.
func (p *Pipe) Done() <-chan struct{} {
	return p.done
}

// Flush returns immediately: Send hands messages straight to the peer.
func (p *Pipe) Flush(context.Context) error {
	return nil
}
