package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1ureka/salvo/internal/board"
	gerr "github.com/1ureka/salvo/internal/errors"
)

// TestEncodeWireFormat pins the JSON layout of every message kind.
func TestEncodeWireFormat(t *testing.T) {
	move := Move{Number: 1, Coordinate: board.At(3, 3)}

	testCases := []struct {
		name string
		msg  Message
		want string
	}{
		{"ready", Ready("alice", false), `{"type":"ready","peer":"alice"}`},
		{"ready reply", Ready("bob", true), `{"type":"ready","peer":"bob","reply":true}`},
		{"attack", Attack(move), `{"type":"attack","move":{"number":1,"x":3,"y":3}}`},
		{"hit", Hit(move), `{"type":"hit","move":{"number":1,"x":3,"y":3,"outcome":"hit"}}`},
		{"miss", Miss(move), `{"type":"miss","move":{"number":1,"x":3,"y":3,"outcome":"miss"}}`},
		{"endgame", EndGame(), `{"type":"endgame"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Encode(tc.msg)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if string(data) != tc.want {
				t.Fatalf("got %s, want %s", data, tc.want)
			}
		})
	}
}

// TestMoveRoundTrip verifies a Move survives encode and decode field for
// field, including the largest sequence number.
func TestMoveRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		msg  Message
	}{
		{"attack", Attack(Move{Number: 7, Coordinate: board.At(10, 3)})},
		{"hit", Hit(Move{Number: 1, Coordinate: board.At(5, 5)})},
		{"miss", Miss(Move{Number: 65535, Coordinate: board.At(26, 26)})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Encode(tc.msg)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Kind != tc.msg.Kind {
				t.Errorf("Kind mismatch: got %s, want %s", decoded.Kind, tc.msg.Kind)
			}
			if decoded.Move == nil {
				t.Fatal("decoded message lost its move")
			}
			if *decoded.Move != *tc.msg.Move {
				t.Errorf("Move mismatch: got %+v, want %+v", *decoded.Move, *tc.msg.Move)
			}
		})
	}
}

func TestReadyRoundTrip(t *testing.T) {
	data, err := Encode(Ready("peer-1", true))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Kind != KindReady || decoded.Peer != "peer-1" || !decoded.Reply || decoded.Move != nil {
		t.Fatalf("unexpected decoded ready: %+v", decoded)
	}
}

// TestAttackClearsOutcome checks the attacker never leaks an outcome.
func TestAttackClearsOutcome(t *testing.T) {
	msg := Attack(Move{Number: 2, Coordinate: board.At(1, 1), Outcome: board.OutcomeHit})
	if msg.Move.Outcome != board.OutcomeUnknown {
		t.Fatalf("attack carries outcome %s", msg.Move.Outcome)
	}
}

func TestMoveString(t *testing.T) {
	testCases := []struct {
		move Move
		want string
	}{
		{Move{Number: 3, Coordinate: board.At(1, 1)}, "#3 A1"},
		{Move{Number: 12, Coordinate: board.At(10, 3), Outcome: board.OutcomeHit}, "#12 C10 hit"},
		{Move{Number: 65535, Coordinate: board.At(2, 26), Outcome: board.OutcomeMiss}, "#65535 Z2 miss"},
	}

	for _, tc := range testCases {
		if got := fmt.Sprint(tc.move); got != tc.want {
			t.Errorf("fmt.Sprint(move) = %q, want %q", got, tc.want)
		}
	}

	if got := Hit(Move{Number: 4, Coordinate: board.At(5, 5)}).String(); got != "hit #4 E5" {
		t.Errorf("message String = %q, want %q", got, "hit #4 E5")
	}
}

func TestDecodeRejects(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", `hello`},
		{"empty object", `{}`},
		{"unknown type", `{"type":"surrender"}`},
		{"attack without move", `{"type":"attack"}`},
		{"hit without outcome", `{"type":"hit","move":{"number":1,"x":1,"y":1}}`},
		{"miss with hit outcome", `{"type":"miss","move":{"number":1,"x":1,"y":1,"outcome":"hit"}}`},
		{"attack with outcome", `{"type":"attack","move":{"number":1,"x":1,"y":1,"outcome":"miss"}}`},
		{"ready with move", `{"type":"ready","move":{"number":1,"x":1,"y":1}}`},
		{"bad outcome", `{"type":"hit","move":{"number":1,"x":1,"y":1,"outcome":"sunk"}}`},
		{"number overflow", `{"type":"attack","move":{"number":70000,"x":1,"y":1}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data))
			if !errors.Is(err, gerr.ErrWrongMessageType) {
				t.Fatalf("expected WrongMessageType, got %v", err)
			}
		})
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	if _, err := Encode(Message{Kind: KindHit}); !errors.Is(err, gerr.ErrWrongMessageType) {
		t.Fatalf("expected WrongMessageType, got %v", err)
	}
}
