package board

import (
	"math/rand/v2"

	gerr "github.com/1ureka/salvo/internal/errors"
)

// Bounds for the random placement search.
const (
	maxPlacementAttempts = 200 // free-slot draws per ship
	maxLayoutAttempts    = 50  // full restarts from an empty grid
)

// DefaultFleet is the classic ship set: carrier, battleship, cruiser,
// submarine, destroyer.
var DefaultFleet = []int{5, 4, 3, 3, 2}

// Cell is one occupied grid position of a ship.
type Cell struct {
	Coordinate
	Hit bool
}

// Ship is an ordered set of unique cells occupied by one vessel.
type Ship struct {
	Cells []Cell
}

// Sunk reports whether every cell of the ship has been hit.
func (s *Ship) Sunk() bool {
	for _, c := range s.Cells {
		if !c.Hit {
			return false
		}
	}
	return true
}

// Board is a player's own grid. Ship positions are private to the owner.
type Board struct {
	size  int
	ships []*Ship

	// index maps an occupied coordinate to its ship and cell position.
	index map[Coordinate]cellRef
	// shots records every incoming attack, for rendering only.
	shots map[Coordinate]bool
}

type cellRef struct {
	ship *Ship
	cell int
}

// NewPlayerBoard places fleet (a list of ship lengths) at random on a
// size×size grid, horizontally or vertically, without overlapping cells.
// It fails only when the fleet cannot be placed.
func NewPlayerBoard(size int, fleet []int, rng *rand.Rand) (*Board, error) {
	if err := checkFleet(size, fleet); err != nil {
		return nil, err
	}

	for layout := 0; layout < maxLayoutAttempts; layout++ {
		if b, ok := placeFleet(size, fleet, rng); ok {
			return b, nil
		}
	}

	return nil, gerr.Newf(gerr.CodeInvalidLayout, "could not place fleet %v on a %dx%d grid", fleet, size, size)
}

// placeFleet tries one greedy layout. It gives up when a ship finds no free
// slot, leaving the caller to start over from an empty grid.
func placeFleet(size int, fleet []int, rng *rand.Rand) (*Board, bool) {
	b := newBoard(size)
	for _, length := range fleet {
		placed := false
		for attempt := 0; attempt < maxPlacementAttempts && !placed; attempt++ {
			cells := randomSlot(size, length, rng)
			if b.free(cells) {
				b.add(cells)
				placed = true
			}
		}
		if !placed {
			return nil, false
		}
	}
	return b, true
}

// NewBoard builds a board from explicit ship positions. Every ship must be
// non-empty, on the grid, and disjoint from the others.
func NewBoard(size int, ships [][]Coordinate) (*Board, error) {
	if size < 1 || size > MaxSize {
		return nil, gerr.Newf(gerr.CodeInvalidLayout, "grid size %d outside 1..%d", size, MaxSize)
	}

	b := newBoard(size)
	for i, cells := range ships {
		if len(cells) == 0 {
			return nil, gerr.Newf(gerr.CodeInvalidLayout, "ship %d has no cells", i)
		}
		for _, c := range cells {
			if err := c.CheckBounds(size); err != nil {
				return nil, err
			}
		}
		if !b.free(cells) {
			return nil, gerr.Newf(gerr.CodeInvalidLayout, "ship %d overlaps another ship", i)
		}
		b.add(cells)
	}

	return b, nil
}

func newBoard(size int) *Board {
	return &Board{
		size:  size,
		index: make(map[Coordinate]cellRef),
		shots: make(map[Coordinate]bool),
	}
}

// Size returns the grid dimension N.
func (b *Board) Size() int { return b.size }

// Ships returns the placed ships. Callers must not mutate them.
func (b *Board) Ships() []*Ship { return b.ships }

// ResolveIncomingAttack reports whether c lands on a ship cell that has not
// been hit yet, and marks that cell as hit. A second attack on the same cell
// resolves as a miss and leaves the board unchanged.
func (b *Board) ResolveIncomingAttack(c Coordinate) bool {
	b.shots[c] = true

	ref, ok := b.index[c]
	if !ok || ref.ship.Cells[ref.cell].Hit {
		return false
	}

	ref.ship.Cells[ref.cell].Hit = true
	return true
}

// IsDefeated reports whether every cell of every ship has been hit.
// A board without ships is never defeated.
func (b *Board) IsDefeated() bool {
	if len(b.ships) == 0 {
		return false
	}
	for _, s := range b.ships {
		if !s.Sunk() {
			return false
		}
	}
	return true
}

// ShipAt reports whether c is occupied by a ship.
func (b *Board) ShipAt(c Coordinate) bool {
	_, ok := b.index[c]
	return ok
}

func (b *Board) free(cells []Coordinate) bool {
	seen := make(map[Coordinate]bool, len(cells))
	for _, c := range cells {
		if _, taken := b.index[c]; taken || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

func (b *Board) add(cells []Coordinate) {
	s := &Ship{Cells: make([]Cell, len(cells))}
	for i, c := range cells {
		s.Cells[i] = Cell{Coordinate: c}
		b.index[c] = cellRef{ship: s, cell: i}
	}
	b.ships = append(b.ships, s)
}

// checkFleet rejects fleets that can never fit, before any random search.
func checkFleet(size int, fleet []int) error {
	if size < 1 || size > MaxSize {
		return gerr.Newf(gerr.CodeInvalidLayout, "grid size %d outside 1..%d", size, MaxSize)
	}
	if len(fleet) == 0 {
		return gerr.New(gerr.CodeInvalidLayout, "fleet is empty")
	}

	total := 0
	for _, length := range fleet {
		if length < 1 || length > size {
			return gerr.Newf(gerr.CodeInvalidLayout, "ship length %d does not fit a %dx%d grid", length, size, size)
		}
		total += length
	}
	if total > size*size {
		return gerr.Newf(gerr.CodeInvalidLayout, "fleet needs %d cells, grid has %d", total, size*size)
	}
	return nil
}

func randomSlot(size, length int, rng *rand.Rand) []Coordinate {
	horizontal := rng.IntN(2) == 0

	maxX, maxY := size, size
	if horizontal {
		maxX = size - length + 1
	} else {
		maxY = size - length + 1
	}
	start := At(rng.IntN(maxX)+1, rng.IntN(maxY)+1)

	cells := make([]Coordinate, length)
	for i := range cells {
		if horizontal {
			cells[i] = At(start.X+i, start.Y)
		} else {
			cells[i] = At(start.X, start.Y+i)
		}
	}
	return cells
}
