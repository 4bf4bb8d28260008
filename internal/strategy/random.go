package strategy

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/1ureka/salvo/internal/board"
)

// Random picks uniformly among the cells not attacked yet.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random strategy drawing from rng. The strategy is
// used from a single session goroutine, so rng needs no locking.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) SuggestNextAttack(_ context.Context, size int, past []string) (board.Coordinate, error) {
	attacked := attackedSet(past)

	free := make([]board.Coordinate, 0, size*size)
	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			if c := board.At(x, y); !attacked[c] {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return board.Coordinate{}, fmt.Errorf("no free cell left on a %dx%d grid", size, size)
	}

	return free[r.rng.IntN(len(free))], nil
}
