package analysis

import (
	"math"
	"testing"
)

func TestOutcomeScore_Empty(t *testing.T) {
	if s := OutcomeScore(0, 0, 0); s != (Score{}) {
		t.Errorf("OutcomeScore(0,0,0) = %+v, want zero", s)
	}
}

func TestOutcomeScore_AllWins(t *testing.T) {
	s := OutcomeScore(10, 0, 0)
	if s.Games != 10 {
		t.Errorf("Games = %d, want 10", s.Games)
	}
	if s.Mean != 1.0 {
		t.Errorf("Mean = %v, want 1.0", s.Mean)
	}
	if s.Low <= 0.5 || s.Low >= 1.0 {
		t.Errorf("Low = %v, want in (0.5, 1.0)", s.Low)
	}
	if s.High != 1.0 {
		t.Errorf("High = %v, want capped at 1.0", s.High)
	}
}

func TestOutcomeScore_AllLosses(t *testing.T) {
	s := OutcomeScore(0, 10, 0)
	if s.Mean != 0.0 {
		t.Errorf("Mean = %v, want 0.0", s.Mean)
	}
	if s.Low != 0.0 {
		t.Errorf("Low = %v, want floored at 0.0", s.Low)
	}
	if s.High <= 0.0 || s.High >= 0.5 {
		t.Errorf("High = %v, want in (0.0, 0.5)", s.High)
	}
}

func TestOutcomeScore_DrawsCountHalf(t *testing.T) {
	s := OutcomeScore(0, 0, 4)
	if s.Mean != 0.5 {
		t.Errorf("Mean = %v, want 0.5 for all draws", s.Mean)
	}
}

func TestOutcomeScore_IntervalNarrowsWithSamples(t *testing.T) {
	small := OutcomeScore(5, 5, 0)
	large := OutcomeScore(500, 500, 0)
	if (large.High - large.Low) >= (small.High - small.Low) {
		t.Errorf("interval did not narrow: small=%v large=%v",
			small.High-small.Low, large.High-large.Low)
	}
}

func TestSpreadFromCounts(t *testing.T) {
	s := SpreadFromCounts([]int{8, 2})
	if s.Moves != 2 || s.Total != 10 {
		t.Errorf("Moves/Total = %d/%d, want 2/10", s.Moves, s.Total)
	}
	if s.Top != 0.8 {
		t.Errorf("Top = %v, want 0.8", s.Top)
	}
	wantEntropy := -(0.8*math.Log2(0.8) + 0.2*math.Log2(0.2))
	if math.Abs(s.Entropy-wantEntropy) > 1e-12 {
		t.Errorf("Entropy = %v, want %v", s.Entropy, wantEntropy)
	}
	if s.Mean != 5 {
		t.Errorf("Mean = %v, want 5", s.Mean)
	}
}

func TestSpreadFromCounts_SingleMove(t *testing.T) {
	s := SpreadFromCounts([]int{7})
	if s.Entropy != 0 {
		t.Errorf("Entropy = %v, want 0 for a single move", s.Entropy)
	}
	if s.Top != 1.0 {
		t.Errorf("Top = %v, want 1.0", s.Top)
	}
}

func TestSpreadFromCounts_Empty(t *testing.T) {
	if s := SpreadFromCounts(nil); s != (MoveSpread{}) {
		t.Errorf("SpreadFromCounts(nil) = %+v, want zero", s)
	}
}
