package game

import (
	"errors"
	"testing"

	"github.com/1ureka/salvo/internal/board"
	gerr "github.com/1ureka/salvo/internal/errors"
	"github.com/1ureka/salvo/internal/protocol"
)

func move(n uint16, x, y int) protocol.Move {
	return protocol.Move{Number: n, Coordinate: board.At(x, y)}
}

func TestLedgerSequenceIsGlobal(t *testing.T) {
	l := NewLedger(8)
	if got := l.NextSequenceNumber(); got != 1 {
		t.Fatalf("fresh ledger expects %d, want 1", got)
	}

	sent, err := l.RecordOutgoingAttack(board.At(1, 1))
	if err != nil {
		t.Fatalf("RecordOutgoingAttack failed: %v", err)
	}
	if sent.Number != 1 || sent.Outcome != board.OutcomeUnknown {
		t.Fatalf("unexpected outgoing move: %+v", sent)
	}

	if err := l.ValidateIncomingAttack(move(2, 4, 4)); err != nil {
		t.Fatalf("ValidateIncomingAttack(#2) failed: %v", err)
	}
	if got := l.NextSequenceNumber(); got != 3 {
		t.Fatalf("after two moves expects %d, want 3", got)
	}

	for _, n := range []uint16{0, 1, 2, 4, 65535} {
		if err := l.ValidateIncomingAttack(move(n, 5, 5)); !errors.Is(err, gerr.ErrInvalidSequence) {
			t.Errorf("number %d: expected InvalidSequence, got %v", n, err)
		}
	}
	if len(l.Received()) != 1 {
		t.Fatalf("rejected moves were recorded: %+v", l.Received())
	}
}

func TestLedgerDuplicateTargets(t *testing.T) {
	l := NewLedger(8)
	if err := l.ValidateIncomingAttack(move(1, 3, 3)); err != nil {
		t.Fatalf("first attack rejected: %v", err)
	}
	if _, err := l.RecordOutgoingAttack(board.At(3, 3)); err != nil {
		t.Fatalf("the same cell on the other board must be allowed: %v", err)
	}
	if err := l.ValidateIncomingAttack(move(3, 3, 3)); !errors.Is(err, gerr.ErrDuplicateTarget) {
		t.Fatalf("expected DuplicateTarget for incoming, got %v", err)
	}
	if _, err := l.RecordOutgoingAttack(board.At(3, 3)); !errors.Is(err, gerr.ErrDuplicateTarget) {
		t.Fatalf("expected DuplicateTarget for outgoing, got %v", err)
	}
	if len(l.Sent()) != 1 || len(l.Received()) != 1 {
		t.Fatalf("duplicates were recorded: sent=%d received=%d", len(l.Sent()), len(l.Received()))
	}
}

func TestLedgerBoundsCheckedFirst(t *testing.T) {
	l := NewLedger(8)
	// Wrong number and off grid: bounds win.
	if err := l.ValidateIncomingAttack(move(9, 0, 3)); !errors.Is(err, gerr.ErrOutOfBounds) {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
	if _, err := l.RecordOutgoingAttack(board.At(1, 9)); !errors.Is(err, gerr.ErrOutOfBounds) {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
	if l.NextSequenceNumber() != 1 {
		t.Fatal("out of bounds move changed the ledger")
	}
}

func TestLedgerConfirmOutgoing(t *testing.T) {
	l := NewLedger(8)
	sent, err := l.RecordOutgoingAttack(board.At(2, 6))
	if err != nil {
		t.Fatalf("RecordOutgoingAttack failed: %v", err)
	}
	if !l.Pending() {
		t.Fatal("fresh attack not pending")
	}

	testCases := []struct {
		name  string
		reply protocol.Move
	}{
		{"unknown number", move(7, 2, 6)},
		{"coordinate mismatch", move(sent.Number, 6, 2)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := l.ConfirmOutgoing(tc.reply, board.OutcomeHit); !errors.Is(err, gerr.ErrInvalidSequence) {
				t.Fatalf("expected InvalidSequence, got %v", err)
			}
		})
	}

	if err := l.ConfirmOutgoing(sent, board.OutcomeMiss); err != nil {
		t.Fatalf("ConfirmOutgoing failed: %v", err)
	}
	if l.Sent()[0].Outcome != board.OutcomeMiss || l.Pending() {
		t.Fatalf("move not resolved: %+v", l.Sent()[0])
	}
	if err := l.ConfirmOutgoing(sent, board.OutcomeHit); !errors.Is(err, gerr.ErrInvalidSequence) {
		t.Fatalf("second confirmation: expected InvalidSequence, got %v", err)
	}
	if got := l.SentTokens(); len(got) != 1 || got[0] != "F2" {
		t.Fatalf("SentTokens = %v, want [F2]", got)
	}
}
