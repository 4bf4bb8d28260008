package transport

import (
	"context"
	"sync/atomic"

	"github.com/1ureka/salvo/internal/util"
	"github.com/pion/webrtc/v4"
	"golang.org/x/time/rate"
)

const (
	highWaterMark  = 256 * 1024 // pause sending when bufferedAmount exceeds this
	lowWaterMark   = 64 * 1024  // resume sending when bufferedAmount drops below this
	sendBufferSize = 64         // outgoing message channel capacity
)

// sender is a goroutine-based message writer that serializes all writes to a
// single DataChannel, adding an open gate, rate pacing and backpressure.
type sender struct {
	inbox       chan []byte
	drainSignal chan struct{}
	limiter     *rate.Limiter
	pending     atomic.Int64 // queued but not yet handed to the DataChannel
}

// newSender creates a sender, wires the backpressure callbacks on dc, and
// starts the background loop. The loop exits when ctx is cancelled.
func newSender(ctx context.Context, dc *webrtc.DataChannel, openSignal <-chan struct{}, limiter *rate.Limiter) *sender {
	s := &sender{
		inbox:       make(chan []byte, sendBufferSize),
		drainSignal: make(chan struct{}, 1),
		limiter:     limiter,
	}

	dc.SetBufferedAmountLowThreshold(uint64(lowWaterMark))
	dc.OnBufferedAmountLow(func() {
		select {
		case s.drainSignal <- struct{}{}:
		default:
		}
	})

	go s.loop(ctx, dc, openSignal)

	return s
}

// loop is the single-writer goroutine. It waits for the DataChannel to open,
// then drains the inbox at the configured rate with backpressure awareness.
func (s *sender) loop(ctx context.Context, dc *webrtc.DataChannel, openSignal <-chan struct{}) {
	// Phase 1: wait for DC to be open.
	select {
	case <-openSignal:
	case <-ctx.Done():
		return
	}

	// Phase 2: send messages with pacing and backpressure.
	for {
		select {
		case data := <-s.inbox:
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}

			if dc.BufferedAmount() > uint64(highWaterMark) {
				select {
				case <-s.drainSignal:
				case <-ctx.Done():
					return
				}
			}

			err := dc.Send(data)
			s.pending.Add(-1)
			if err != nil {
				util.LogError("failed to send message (%d bytes): %v", len(data), err)
				continue
			}

			util.Stats.AddSent(len(data))
		case <-ctx.Done():
			return
		}
	}
}

// send enqueues a message for transmission. It blocks while the internal
// buffer is full and fails when ctx or the transport is done.
func (s *sender) send(ctx, transportCtx context.Context, data []byte) error {
	s.pending.Add(1)
	select {
	case s.inbox <- data:
		return nil
	case <-ctx.Done():
		s.pending.Add(-1)
		return ctx.Err()
	case <-transportCtx.Done():
		s.pending.Add(-1)
		return errClosed
	}
}
