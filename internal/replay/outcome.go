package replay

import "github.com/notnil/chess"

// Result is a game outcome from the tracked identity's point of view.
type Result uint8

const (
	ResultNone Result = iota
	ResultWin
	ResultLoss
	ResultDraw
)

// String returns "win", "loss", "draw", or "" for ResultNone.
func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	case ResultDraw:
		return "draw"
	}
	return ""
}

// Resolve maps a game's result tag and the tracked identity's color to an
// outcome. Undetermined results, and games where the identity's color
// could not be established, resolve to ResultNone.
func Resolve(outcome chess.Outcome, color Color) Result {
	if color == ColorNone {
		return ResultNone
	}
	switch outcome {
	case chess.WhiteWon:
		if color == White {
			return ResultWin
		}
		return ResultLoss
	case chess.BlackWon:
		if color == Black {
			return ResultWin
		}
		return ResultLoss
	case chess.Draw:
		return ResultDraw
	}
	return ResultNone
}

// VisitedPositions returns the set of distinct positions a game's facts
// passed through. Outcome counters are attributed once per entry, so a
// position revisited within one game counts a single time toward that
// game's result.
func VisitedPositions(facts []Fact) map[string]struct{} {
	visited := make(map[string]struct{}, len(facts))
	for _, f := range facts {
		visited[f.PositionBefore] = struct{}{}
	}
	return visited
}
