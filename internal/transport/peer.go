package transport

import (
	"strings"

	"github.com/pion/webrtc/v4"
)

// DefaultSTUNServers are used when Options.ICEServers is empty. There is no
// TURN relay, so both peers need direct connectivity.
var DefaultSTUNServers = []string{
	"stun:stun.l.google.com:19302",
	"stun:stun1.l.google.com:19302",
}

// The game channel is opened by both sides with the same label and ID.
const (
	channelLabel        = "salvo"
	channelID    uint16 = 0
)

// iceServers builds the ICE configuration from STUN URLs, skipping blanks.
func iceServers(urls []string) []webrtc.ICEServer {
	var clean []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			clean = append(clean, u)
		}
	}
	if len(clean) == 0 {
		clean = DefaultSTUNServers
	}
	return []webrtc.ICEServer{{URLs: clean}}
}

func newPeerConnection(urls []string) (*webrtc.PeerConnection, error) {
	return webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers: iceServers(urls),
	})
}

// gameChannelInit is pre-negotiated, so neither side waits for
// OnDataChannel. It is ordered and fully reliable: moves carry a global
// sequence number and a reordered or lost move ends the game.
func gameChannelInit() *webrtc.DataChannelInit {
	ordered, negotiated, id := true, true, channelID
	return &webrtc.DataChannelInit{
		Ordered:    &ordered,
		Negotiated: &negotiated,
		ID:         &id,
	}
}

func newDataChannel(pc *webrtc.PeerConnection) (*webrtc.DataChannel, error) {
	return pc.CreateDataChannel(channelLabel, gameChannelInit())
}
