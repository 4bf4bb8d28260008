// Package protocol defines the wire messages exchanged between two peers.
package protocol

import (
	"fmt"

	"github.com/1ureka/salvo/internal/board"
)

// Kind identifies the message variant.
type Kind string

// Message kinds.
const (
	KindReady   Kind = "ready"   // handshake, carries the sender identity
	KindAttack  Kind = "attack"  // move with an unknown outcome
	KindHit     Kind = "hit"     // reply to an attack that landed
	KindMiss    Kind = "miss"    // reply to an attack that missed
	KindEndGame Kind = "endgame" // the sender's fleet is sunk
)

// Move is one attack: a global sequence number, a target and, once the
// defender has replied, its outcome.
type Move struct {
	Number uint16 `json:"number"`
	board.Coordinate
	Outcome board.Outcome `json:"outcome,omitempty"`
}

// String renders the move as "#3 A1", followed by the outcome once known.
// It shadows the embedded Coordinate's String.
func (m Move) String() string {
	if m.Outcome == board.OutcomeUnknown {
		return fmt.Sprintf("#%d %s", m.Number, m.Coordinate)
	}
	return fmt.Sprintf("#%d %s %s", m.Number, m.Coordinate, m.Outcome)
}

// Message is the tagged union sent over the data channel. Move is set for
// attack, hit and miss; Peer and Reply only for ready.
type Message struct {
	Kind  Kind   `json:"type"`
	Move  *Move  `json:"move,omitempty"`
	Peer  string `json:"peer,omitempty"`
	Reply bool   `json:"reply,omitempty"`
}

// Ready announces the sender is ready to play. reply marks a Ready sent in
// answer to the peer's Ready.
func Ready(peer string, reply bool) Message {
	return Message{Kind: KindReady, Peer: peer, Reply: reply}
}

// Attack wraps an outgoing move. The outcome is always sent as unknown.
func Attack(m Move) Message {
	m.Outcome = board.OutcomeUnknown
	return Message{Kind: KindAttack, Move: &m}
}

// Hit answers an attack that landed on a ship cell.
func Hit(m Move) Message {
	m.Outcome = board.OutcomeHit
	return Message{Kind: KindHit, Move: &m}
}

// Miss answers an attack that landed on water.
func Miss(m Move) Message {
	m.Outcome = board.OutcomeMiss
	return Message{Kind: KindMiss, Move: &m}
}

// Reply builds the Hit or Miss answer for m.
func Reply(m Move, isHit bool) Message {
	if isHit {
		return Hit(m)
	}
	return Miss(m)
}

// EndGame tells the peer the sender has lost.
func EndGame() Message {
	return Message{Kind: KindEndGame}
}

func (m Message) String() string {
	if m.Move == nil {
		return string(m.Kind)
	}
	return fmt.Sprintf("%s #%d %s", m.Kind, m.Move.Number, m.Move.Coordinate)
}
