package game

import (
	"github.com/1ureka/salvo/internal/board"
	gerr "github.com/1ureka/salvo/internal/errors"
	"github.com/1ureka/salvo/internal/protocol"
)

// Ledger records every move of the game in both directions. Sequence
// numbers are global: the n-th accepted move, sent or received, carries n.
type Ledger struct {
	size     int
	sent     []protocol.Move
	received []protocol.Move
}

// NewLedger creates an empty ledger for a size×size grid.
func NewLedger(size int) *Ledger {
	return &Ledger{size: size}
}

// NextSequenceNumber returns the number the next accepted move must carry.
func (l *Ledger) NextSequenceNumber() uint16 {
	return uint16(len(l.sent) + len(l.received) + 1)
}

// ValidateIncomingAttack accepts an attack from the peer and appends it to
// the received moves. Nothing is recorded when it fails.
func (l *Ledger) ValidateIncomingAttack(m protocol.Move) error {
	if err := m.CheckBounds(l.size); err != nil {
		return err
	}
	if want := l.NextSequenceNumber(); m.Number != want {
		return gerr.Newf(gerr.CodeInvalidSequence, "invalid move number %d, expected %d", m.Number, want)
	}
	if indexOf(l.received, m.Coordinate) >= 0 {
		return gerr.Newf(gerr.CodeDuplicateTarget, "%s already attacked by the opponent", m.Coordinate)
	}

	m.Outcome = board.OutcomeUnknown
	l.received = append(l.received, m)
	return nil
}

// ResolveIncoming stores the outcome of the last received attack.
func (l *Ledger) ResolveIncoming(isHit bool) {
	if n := len(l.received); n > 0 {
		l.received[n-1].Outcome = board.OutcomeOf(isHit)
	}
}

// RecordOutgoingAttack appends a new unresolved move against c and returns
// it, numbered with the next sequence number.
func (l *Ledger) RecordOutgoingAttack(c board.Coordinate) (protocol.Move, error) {
	if err := c.CheckBounds(l.size); err != nil {
		return protocol.Move{}, err
	}
	if l.Attacked(c) {
		return protocol.Move{}, gerr.Newf(gerr.CodeDuplicateTarget, "%s already attacked", c)
	}

	m := protocol.Move{Number: l.NextSequenceNumber(), Coordinate: c}
	l.sent = append(l.sent, m)
	return m, nil
}

// ConfirmOutgoing resolves the pending sent move matching m with outcome.
// The reply must name a move we sent, that is still unresolved, at the same
// coordinate.
func (l *Ledger) ConfirmOutgoing(m protocol.Move, outcome board.Outcome) error {
	if err := m.CheckBounds(l.size); err != nil {
		return err
	}
	if outcome == board.OutcomeUnknown {
		return gerr.Newf(gerr.CodeWrongMessageType, "reply to move %d without an outcome", m.Number)
	}

	i := -1
	for j := range l.sent {
		if l.sent[j].Number == m.Number {
			i = j
			break
		}
	}
	switch {
	case i < 0:
		return gerr.Newf(gerr.CodeInvalidSequence, "reply to unknown move %d", m.Number)
	case l.sent[i].Outcome != board.OutcomeUnknown:
		return gerr.Newf(gerr.CodeInvalidSequence, "move %d already resolved", m.Number)
	case l.sent[i].Coordinate != m.Coordinate:
		return gerr.Newf(gerr.CodeInvalidSequence, "reply to move %d names %s, sent %s", m.Number, m.Coordinate, l.sent[i].Coordinate)
	}

	l.sent[i].Outcome = outcome
	return nil
}

// Attacked reports whether we already sent an attack against c.
func (l *Ledger) Attacked(c board.Coordinate) bool {
	return indexOf(l.sent, c) >= 0
}

// Pending reports whether a sent move still waits for its reply.
func (l *Ledger) Pending() bool {
	for _, m := range l.sent {
		if m.Outcome == board.OutcomeUnknown {
			return true
		}
	}
	return false
}

// Sent returns the moves sent so far. Callers must not mutate it.
func (l *Ledger) Sent() []protocol.Move { return l.sent }

// Received returns the moves received so far. Callers must not mutate it.
func (l *Ledger) Received() []protocol.Move { return l.received }

// SentTokens lists the coordinates already attacked, as "A1" style tokens.
func (l *Ledger) SentTokens() []string {
	tokens := make([]string, len(l.sent))
	for i, m := range l.sent {
		tokens[i] = m.Coordinate.String()
	}
	return tokens
}

func indexOf(moves []protocol.Move, c board.Coordinate) int {
	for i, m := range moves {
		if m.Coordinate == c {
			return i
		}
	}
	return -1
}
