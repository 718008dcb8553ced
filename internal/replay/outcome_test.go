package replay

import (
	"testing"

	"github.com/notnil/chess"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		outcome chess.Outcome
		color   Color
		want    Result
	}{
		{"white win as white", chess.WhiteWon, White, ResultWin},
		{"white win as black", chess.WhiteWon, Black, ResultLoss},
		{"black win as black", chess.BlackWon, Black, ResultWin},
		{"black win as white", chess.BlackWon, White, ResultLoss},
		{"draw as white", chess.Draw, White, ResultDraw},
		{"draw as black", chess.Draw, Black, ResultDraw},
		{"undetermined", chess.NoOutcome, White, ResultNone},
		{"no color", chess.WhiteWon, ColorNone, ResultNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.outcome, tc.color); got != tc.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tc.outcome, tc.color, got, tc.want)
			}
		})
	}
}
