package protocol

import (
	"encoding/json"

	"github.com/1ureka/salvo/internal/board"
	gerr "github.com/1ureka/salvo/internal/errors"
)

// Encode serializes a Message into a byte slice for DataChannel transmission.
func Encode(msg Message) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

// Decode deserializes a byte slice into a Message. Anything that is not a
// well-formed message of a known kind is a WrongMessageType error.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, gerr.Wrap(gerr.CodeWrongMessageType, "malformed message", err)
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Validate checks that the fields required by the message kind are present.
// It does not check coordinates against a grid size.
func (m Message) Validate() error {
	switch m.Kind {
	case KindReady, KindEndGame:
		if m.Move != nil {
			return gerr.Newf(gerr.CodeWrongMessageType, "%s message carries a move", m.Kind)
		}
	case KindAttack, KindHit, KindMiss:
		if m.Move == nil {
			return gerr.Newf(gerr.CodeWrongMessageType, "%s message without a move", m.Kind)
		}
		if want := expectedOutcome(m.Kind); m.Move.Outcome != want {
			return gerr.Newf(gerr.CodeWrongMessageType, "%s message with outcome %s", m.Kind, m.Move.Outcome)
		}
	default:
		return gerr.Newf(gerr.CodeWrongMessageType, "unknown message type %q", m.Kind)
	}
	return nil
}

func expectedOutcome(k Kind) board.Outcome {
	switch k {
	case KindHit:
		return board.OutcomeHit
	case KindMiss:
		return board.OutcomeMiss
	default:
		return board.OutcomeUnknown
	}
}
