// Package board models the battleship grids: a player's own board holding
// the private ship placement, and the tracking board recording the outcome of
// every attack the player has sent to the opponent.
package board

import (
	"fmt"
	"strconv"
	"strings"

	gerr "github.com/1ureka/salvo/internal/errors"
)

// MaxSize is the largest supported grid: rows are labelled A..Z.
const MaxSize = 26

// Coordinate is a 1-based grid position. X is the column, Y the row.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// At is shorthand for Coordinate{X: x, Y: y}.
func At(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// In reports whether c lies on a size×size grid.
func (c Coordinate) In(size int) bool {
	return c.X >= 1 && c.X <= size && c.Y >= 1 && c.Y <= size
}

// CheckBounds returns an OutOfBounds error when c is not on a size×size grid.
func (c Coordinate) CheckBounds(size int) error {
	if !c.In(size) {
		return gerr.Newf(gerr.CodeOutOfBounds, "coordinate (%d,%d) outside 1..%d", c.X, c.Y, size)
	}
	return nil
}

// String renders the letter-row + number-column token, e.g. (3,1) is "A3".
// Coordinates that cannot be expressed as a token print as "(x,y)".
func (c Coordinate) String() string {
	if c.Y < 1 || c.Y > MaxSize || c.X < 1 {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return string(rune('A'+c.Y-1)) + strconv.Itoa(c.X)
}

// ParseCoordinate parses a token such as "A1" or "c10". It does not check
// the token against a grid size.
func ParseCoordinate(token string) (Coordinate, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if len(token) < 2 {
		return Coordinate{}, fmt.Errorf("coordinate token too short: %q", token)
	}

	row := token[0]
	if row < 'A' || row > 'Z' {
		return Coordinate{}, fmt.Errorf("invalid row in coordinate token: %q", token)
	}

	col, err := strconv.Atoi(token[1:])
	if err != nil || col < 1 {
		return Coordinate{}, fmt.Errorf("invalid column in coordinate token: %q", token)
	}

	return Coordinate{X: col, Y: int(row-'A') + 1}, nil
}

// Outcome is the learned result of an attack.
type Outcome uint8

const (
	OutcomeUnknown Outcome = iota
	OutcomeHit
	OutcomeMiss
)

// OutcomeOf converts a hit flag into an Outcome.
func OutcomeOf(isHit bool) Outcome {
	if isHit {
		return OutcomeHit
	}
	return OutcomeMiss
}

func (o Outcome) String() string {
	switch o {
	case OutcomeUnknown:
		return "unknown"
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "invalid"
	}
}

// MarshalText encodes the outcome as "unknown", "hit" or "miss".
func (o Outcome) MarshalText() ([]byte, error) {
	if o > OutcomeMiss {
		return nil, fmt.Errorf("invalid outcome: %d", o)
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes "unknown", "hit" or "miss". The empty string decodes
// to OutcomeUnknown.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "unknown":
		*o = OutcomeUnknown
	case "hit":
		*o = OutcomeHit
	case "miss":
		*o = OutcomeMiss
	default:
		return fmt.Errorf("invalid outcome: %q", text)
	}
	return nil
}
