// Package transport carries game messages between the two peers: a WebRTC
// DataChannel for real games and an in-memory pipe for local play.
package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/1ureka/salvo/internal/util"
	"github.com/pion/webrtc/v4"
	"golang.org/x/time/rate"
)

const (
	recvBufferSize    = 64 // inbound message channel capacity
	flushPollInterval = 20 * time.Millisecond
)

var errClosed = errors.New("transport closed")

// Options configures a Transport.
type Options struct {
	ICEServers []string // STUN URLs, DefaultSTUNServers when empty
	SendRate   float64  // messages per second, unlimited when <= 0
	SendBurst  int
}

// Transport wraps a single PeerConnection + DataChannel pair, providing a
// high-level API for signaling exchange, paced message sending with
// backpressure, and message receiving.
//
// Its lifecycle is governed by the DataChannel state and the context passed
// at construction time. The PeerConnection state is recorded but does not
// drive open/close decisions.
type Transport struct {
	pc *webrtc.PeerConnection
	dc *webrtc.DataChannel

	sender     *sender
	inbox      chan []byte
	openSignal chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	pcState  webrtc.PeerConnectionState
	remoteID string
}

// NewTransport creates a Transport backed by a new PeerConnection and a
// pre-negotiated DataChannel. The caller performs signaling via the exposed
// methods (CreateOffer / CreateAnswer / …) and then uses Send / Receive.
//
// The Transport is considered alive as long as the DataChannel is open and
// ctx has not been cancelled.
func NewTransport(ctx context.Context, opts Options) (*Transport, error) {
	pc, err := newPeerConnection(opts.ICEServers)
	if err != nil {
		return nil, err
	}

	dc, err := newDataChannel(pc)
	if err != nil {
		pc.Close()
		return nil, err
	}

	tCtx, tCancel := context.WithCancel(ctx)

	t := &Transport{
		pc:         pc,
		dc:         dc,
		inbox:      make(chan []byte, recvBufferSize),
		openSignal: make(chan struct{}),
		ctx:        tCtx,
		cancel:     tCancel,
		pcState:    webrtc.PeerConnectionStateNew,
	}

	// DC open gate.
	var openOnce sync.Once
	dc.OnOpen(func() {
		util.LogDebug("DataChannel open")
		openOnce.Do(func() { close(t.openSignal) })
	})

	// DC close → cancel transport context.
	dc.OnClose(func() {
		util.LogDebug("DataChannel closed")
		tCancel()
	})

	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		util.Stats.AddRecv(len(msg.Data))
		select {
		case t.inbox <- msg.Data:
		case <-tCtx.Done():
		}
	})

	// Record PC state (informational only).
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		util.LogDebug("PeerConnection state: %s", state.String())
		t.mu.Lock()
		t.pcState = state
		t.mu.Unlock()
	})

	limit, burst := rate.Limit(opts.SendRate), opts.SendBurst
	if opts.SendRate <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	t.sender = newSender(tCtx, dc, t.openSignal, rate.NewLimiter(limit, burst))

	return t, nil
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// Ready returns a channel that is closed when the DataChannel is open and
// the Transport is ready to send and receive.
func (t *Transport) Ready() <-chan struct{} {
	return t.openSignal
}

// Done returns a channel that is closed when the Transport is shut down
// (DataChannel closed or parent context cancelled).
func (t *Transport) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Close shuts down the DataChannel and PeerConnection.
func (t *Transport) Close() error {
	t.cancel()
	return errors.Join(t.dc.Close(), t.pc.Close())
}

// ConnectionState returns the last observed PeerConnection state.
func (t *Transport) ConnectionState() webrtc.PeerConnectionState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pcState
}

// SetRemoteID records the identity the peer announced during signaling.
func (t *Transport) SetRemoteID(id string) {
	t.mu.Lock()
	t.remoteID = id
	t.mu.Unlock()
}

// RemoteID returns the identity the peer announced during signaling.
func (t *Transport) RemoteID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.remoteID
}

// ---------------------------------------------------------------------------
// Signaling
// ---------------------------------------------------------------------------

// CreateOffer generates an SDP offer.
func (t *Transport) CreateOffer() (webrtc.SessionDescription, error) {
	return t.pc.CreateOffer(nil)
}

// CreateAnswer generates an SDP answer.
func (t *Transport) CreateAnswer() (webrtc.SessionDescription, error) {
	return t.pc.CreateAnswer(nil)
}

// SetLocalDescription applies the local SDP.
func (t *Transport) SetLocalDescription(sdp webrtc.SessionDescription) error {
	return t.pc.SetLocalDescription(sdp)
}

// SetRemoteDescription applies the remote SDP.
func (t *Transport) SetRemoteDescription(sdp webrtc.SessionDescription) error {
	return t.pc.SetRemoteDescription(sdp)
}

// OnICECandidate registers a callback invoked whenever a new local ICE
// candidate is gathered. A nil candidate signals the end of gathering.
func (t *Transport) OnICECandidate(fn func(*webrtc.ICECandidate)) {
	t.pc.OnICECandidate(fn)
}

// AddICECandidate adds a remote ICE candidate received through signaling.
func (t *Transport) AddICECandidate(candidate webrtc.ICECandidateInit) error {
	return t.pc.AddICECandidate(candidate)
}

// ---------------------------------------------------------------------------
// Data
// ---------------------------------------------------------------------------

// Send enqueues an encoded message for the peer. Delivery is best effort:
// a nil error only means the message was queued.
func (t *Transport) Send(ctx context.Context, data []byte) error {
	return t.sender.send(ctx, t.ctx, data)
}

// Flush waits until every queued message has been handed to the
// DataChannel and its send buffer has drained.
func (t *Transport) Flush(ctx context.Context) error {
	ticker := time.NewTicker(flushPollInterval)
	defer ticker.Stop()

	for t.sender.pending.Load() > 0 || t.dc.BufferedAmount() > 0 {
		select {
		case <-ticker.C:
		case <-t.ctx.Done():
			return errClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Receive blocks until the next inbound message arrives. It fails once the
// DataChannel is closed or ctx is cancelled. Messages that arrived before
// the close are still delivered.
func (t *Transport) Receive(ctx context.Context) (string, []byte, error) {
	select {
	case data := <-t.inbox:
		return t.RemoteID(), data, nil
	default:
	}

	select {
	case data := <-t.inbox:
		return t.RemoteID(), data, nil
	case <-t.ctx.Done():
		return "", nil, errClosed
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}
}
