// Package strategy provides attack target selection: a uniform random
// picker and a picker backed by a hosted language model.
package strategy

import (
	"context"
	"regexp"
	"strings"

	"github.com/1ureka/salvo/internal/board"
)

// Strategy suggests the next coordinate to attack on a size×size grid,
// given the tokens ("A1", "C10", ...) of every attack already sent.
// Suggestions are advisory: the caller re-checks bounds and duplicates.
type Strategy interface {
	SuggestNextAttack(ctx context.Context, size int, past []string) (board.Coordinate, error)
}

// Func adapts a plain function to the Strategy interface.
type Func func(ctx context.Context, size int, past []string) (board.Coordinate, error)

func (f Func) SuggestNextAttack(ctx context.Context, size int, past []string) (board.Coordinate, error) {
	return f(ctx, size, past)
}

// Fallback is the target used when a suggestion cannot be parsed.
var Fallback = board.At(1, 1)

var tokenPattern = regexp.MustCompile(`[A-Z][0-9]+`)

// ParseSuggestion extracts the first coordinate token from free-form text.
// Output without a usable token yields Fallback.
func ParseSuggestion(output string) board.Coordinate {
	token := tokenPattern.FindString(strings.ToUpper(strings.TrimSpace(output)))
	if token == "" {
		return Fallback
	}
	c, err := board.ParseCoordinate(token)
	if err != nil {
		return Fallback
	}
	return c
}

func attackedSet(past []string) map[board.Coordinate]bool {
	set := make(map[board.Coordinate]bool, len(past))
	for _, token := range past {
		if c, err := board.ParseCoordinate(token); err == nil {
			set[c] = true
		}
	}
	return set
}
