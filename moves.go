package repertoire

import "fmt"

// MoveCount is one entry of a top-moves query: a move in UCI form and
// the number of times it was played from the queried position.
type MoveCount struct {
	// Move is the move key: source square, destination square, and an
	// optional promotion letter (e.g. "e2e4", "e7e8q").
	Move string

	// Count is how often the move was played from the position.
	Count int
}

// ResultStats summarizes the game outcomes attributed to a position,
// from the tracked identity's point of view.
type ResultStats struct {
	Win   int
	Loss  int
	Draw  int
	Total int
}

// Score returns a human-readable score summary like "+3 =1 -2".
func (r ResultStats) Score() string {
	return fmt.Sprintf("+%d =%d -%d", r.Win, r.Draw, r.Loss)
}

// WinRate returns the score fraction in [0, 1], counting draws as half.
// Zero games yields 0.
func (r ResultStats) WinRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return (float64(r.Win) + 0.5*float64(r.Draw)) / float64(r.Total)
}
