package board

// TrackingBoard is the attacker's view of the opponent's grid: the outcome
// of every attack sent so far. It never holds ship geometry.
type TrackingBoard struct {
	size  int
	shots map[Coordinate]Outcome
}

// NewTrackingBoard creates an empty tracking board for a size×size grid.
func NewTrackingBoard(size int) *TrackingBoard {
	return &TrackingBoard{
		size:  size,
		shots: make(map[Coordinate]Outcome),
	}
}

// Size returns the grid dimension N.
func (t *TrackingBoard) Size() int { return t.size }

// RecordOutgoingResult stores the outcome learned for c, overwriting any
// previous entry.
func (t *TrackingBoard) RecordOutgoingResult(c Coordinate, isHit bool) {
	t.shots[c] = OutcomeOf(isHit)
}

// Outcome returns the recorded outcome for c, or OutcomeUnknown.
func (t *TrackingBoard) Outcome(c Coordinate) Outcome {
	return t.shots[c]
}

// Hits counts recorded hits.
func (t *TrackingBoard) Hits() int {
	n := 0
	for _, o := range t.shots {
		if o == OutcomeHit {
			n++
		}
	}
	return n
}
