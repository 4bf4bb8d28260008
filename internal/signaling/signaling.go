package signaling

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/pterm/pterm"

	"github.com/1ureka/salvo/internal/transport"
	"github.com/1ureka/salvo/internal/util"
)

// PINLength is the number of digits of a generated host PIN.
const PINLength = 6

// HostOptions configures the host side of signaling.
type HostOptions struct {
	Addr      string // listen address, ":0" for a random port
	PIN       string // generated when empty
	LocalID   string
	Transport transport.Options
}

// EstablishAsHost executes the full host-side signaling flow:
//  1. Start a WS server and print its port and PIN
//  2. Wait for the client to connect
//  3. Create a Transport
//  4. Exchange identities, then SDP/ICE (the host offers)
//  5. Wait for the DataChannel to be ready
//  6. Close the WS server and connection
//
// The returned Transport knows the identity the client announced.
func EstablishAsHost(ctx context.Context, opts HostOptions) (*transport.Transport, error) {
	pin := opts.PIN
	if pin == "" {
		pin = generatePIN(PINLength)
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":0"
	}

	srv := newServer(pin)
	wsPort, err := srv.start(addr)
	if err != nil {
		return nil, err
	}
	defer srv.close()

	pterm.DefaultBox.WithTitle("WebSocket Signaling Server").Println(
		fmt.Sprintf("Port : %d\nPIN  : %s\nPath : /ws?pin=%s", wsPort, pin, pin),
	)
	util.LogInfo("waiting for opponent to connect...")

	wsConn, err := srv.waitForClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for client: %w", err)
	}
	defer wsConn.Close()
	util.LogInfo("client connected")

	tr, err := transport.NewTransport(ctx, opts.Transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create Transport: %w", err)
	}

	return exchange(ctx, wsConn, tr, opts.LocalID, true)
}

// EstablishAsClient executes the full client-side signaling flow:
//  1. Connect to the host's WS server (the URL carries the PIN)
//  2. Create a Transport
//  3. Exchange identities, then SDP/ICE (the client answers)
//  4. Wait for the DataChannel to be ready
//  5. Close the WS connection
func EstablishAsClient(ctx context.Context, wsURL, localID string, opts transport.Options) (*transport.Transport, error) {
	util.LogInfo("connecting to host...")
	wsConn, err := connect(ctx, wsURL)
	if err != nil {
		return nil, err
	}
	defer wsConn.Close()
	util.LogDebug("WS connected: %s", wsURL)

	tr, err := transport.NewTransport(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Transport: %w", err)
	}

	return exchange(ctx, wsConn, tr, localID, false)
}

// exchange drives hello and SDP/ICE over wsConn until the DataChannel opens.
// tr is closed on failure.
func exchange(ctx context.Context, wsConn *websocket.Conn, tr *transport.Transport, localID string, offer bool) (*transport.Transport, error) {
	s := &sender{tr: tr, conn: wsConn}
	r := &receiver{tr: tr, conn: wsConn, sender: s}

	// Forward local ICE candidates.
	tr.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c != nil {
			data, _ := json.Marshal(c.ToJSON())
			// Error intentionally ignored: sendCandidate is best-effort.
			s.sendCandidate(string(data))
		}
	})

	// Exits when wsConn is closed by the caller's defer.
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.watch()
	}()

	if err := s.sendHello(localID); err != nil {
		tr.Close()
		return nil, fmt.Errorf("failed to send hello: %w", err)
	}
	if offer {
		if err := s.sendOffer(); err != nil {
			tr.Close()
			return nil, fmt.Errorf("failed to send Offer: %w", err)
		}
	}

	select {
	case <-tr.Ready():
		util.LogDebug("WebRTC DataChannel established with %q, closing WS", tr.RemoteID())
		return tr, nil

	case err := <-errCh:
		tr.Close()
		return nil, fmt.Errorf("signaling failed: %w", err)

	case <-ctx.Done():
		tr.Close()
		return nil, ctx.Err()
	}
}
