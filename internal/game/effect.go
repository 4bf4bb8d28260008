// Package game implements the turn-synchronization protocol between two
// peers: the ready handshake, turn arbitration, the attack and reply cycle,
// and termination. The Session is a pure state machine. It never performs
// I/O; every transition returns the effects the caller must apply in order.
package game

import "github.com/1ureka/salvo/internal/protocol"

// Effect is an action requested by the Session: Send, Draw or Log.
type Effect interface {
	effect()
}

// Send asks the driver to deliver a message to the peer.
type Send struct {
	Message protocol.Message
}

// Draw asks the display to replace the board panel.
type Draw struct {
	Grid string
}

// Log asks the display to append a log entry.
type Log struct {
	Entry    string
	Severity Severity
}

func (Send) effect() {}
func (Draw) effect() {}
func (Log) effect()  {}

// Severity classifies a log entry for the display.
type Severity uint8

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityHit          // our attack hit
	SeverityMiss         // our attack missed
	SeverityOpponentHit  // the opponent hit us
	SeverityOpponentMiss // the opponent missed
	SeverityWon
	SeverityLost
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityHit:
		return "hit"
	case SeverityMiss:
		return "miss"
	case SeverityOpponentHit:
		return "opponent-hit"
	case SeverityOpponentMiss:
		return "opponent-miss"
	case SeverityWon:
		return "won"
	case SeverityLost:
		return "lost"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}
