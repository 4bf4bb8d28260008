// Package signaling runs the WebSocket signaling phase: identity hello,
// SDP offer/answer and trickle ICE, ending with an open DataChannel.
package signaling

// messageType identifies the kind of signaling message.
type messageType string

const (
	msgTypeHello     messageType = "hello" // sender's peer identity
	msgTypeOffer     messageType = "offer"
	msgTypeAnswer    messageType = "answer"
	msgTypeCandidate messageType = "candidate"
)

// message is the JSON structure exchanged over the WebSocket during signaling.
type message struct {
	Type      messageType `json:"type"`
	Peer      string      `json:"peer,omitempty"`
	SDP       string      `json:"sdp,omitempty"`
	Candidate string      `json:"candidate,omitempty"` // JSON-encoded ICECandidateInit
}
