package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid symbols.
const (
	SymbolWater = '.'
	SymbolShip  = '#'
	SymbolHit   = 'X'
	SymbolMiss  = 'o'
)

// Render draws the own board. With revealShips the owner's ship cells are
// shown; without it only incoming hits and misses are visible.
func (b *Board) Render(revealShips bool) string {
	return renderGrid(b.size, func(c Coordinate) rune {
		ref, isShip := b.index[c]
		switch {
		case isShip && ref.ship.Cells[ref.cell].Hit:
			return SymbolHit
		case b.shots[c]:
			return SymbolMiss
		case isShip && revealShips:
			return SymbolShip
		default:
			return SymbolWater
		}
	})
}

// Render draws the tracking board: hits, misses and unexplored water.
func (t *TrackingBoard) Render() string {
	return renderGrid(t.size, func(c Coordinate) rune {
		switch t.shots[c] {
		case OutcomeHit:
			return SymbolHit
		case OutcomeMiss:
			return SymbolMiss
		default:
			return SymbolWater
		}
	})
}

// renderGrid lays out a size×size grid with a numeric column header and
// lettered rows, e.g.
//
//	   1 2 3
//	A  . # .
//	B  X o .
func renderGrid(size int, symbol func(Coordinate) rune) string {
	width := len(strconv.Itoa(size)) + 1

	var sb strings.Builder
	sb.WriteString("  ")
	for x := 1; x <= size; x++ {
		fmt.Fprintf(&sb, "%*d", width, x)
	}
	sb.WriteByte('\n')

	for y := 1; y <= size; y++ {
		sb.WriteRune(rune('A' + y - 1))
		sb.WriteByte(' ')
		for x := 1; x <= size; x++ {
			fmt.Fprintf(&sb, "%*c", width, symbol(At(x, y)))
		}
		if y < size {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
