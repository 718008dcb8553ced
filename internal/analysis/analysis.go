// Package analysis provides statistical summaries over position buckets.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Score summarizes the outcomes recorded for a position: a score in
// [0, 1] from the tracked identity's point of view (win=1, draw=0.5)
// with a Wilson confidence interval around it.
type Score struct {
	Games int
	Mean  float64
	Low   float64 // Lower bound of the Wilson interval.
	High  float64 // Upper bound of the Wilson interval.
}

// z for a 95% two-sided interval.
const z95 = 1.959963984540054

// OutcomeScore computes the score summary from outcome counters.
// Zero games yields a zero Score.
func OutcomeScore(win, loss, draw int) Score {
	n := win + loss + draw
	if n == 0 {
		return Score{}
	}

	p := (float64(win) + 0.5*float64(draw)) / float64(n)
	low, high := wilson(p, float64(n), z95)
	return Score{Games: n, Mean: p, Low: low, High: high}
}

// wilson computes the Wilson score interval for proportion p over n trials.
func wilson(p, n, z float64) (low, high float64) {
	z2 := z * z
	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	spread := z / denom * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	low = math.Max(0, center-spread)
	high = math.Min(1, center+spread)
	// At the degenerate proportions the bound is algebraically exact,
	// but center±spread accumulates float error just inside it.
	if p <= 0 {
		low = 0
	}
	if p >= 1 {
		high = 1
	}
	return low, high
}

// MoveSpread summarizes how concentrated the move choice is at a
// position.
type MoveSpread struct {
	Moves   int     // Distinct moves observed.
	Total   int     // Total moves played.
	Top     float64 // Share of the most common move.
	Entropy float64 // Shannon entropy of the move distribution, in bits.
	Mean    float64 // Mean count per distinct move.
	StdDev  float64 // Standard deviation of counts per distinct move.
}

// SpreadFromCounts computes a MoveSpread from per-move counts.
// An empty input yields a zero MoveSpread.
func SpreadFromCounts(counts []int) MoveSpread {
	if len(counts) == 0 {
		return MoveSpread{}
	}

	var total int
	var top int
	samples := make([]float64, len(counts))
	for i, c := range counts {
		total += c
		if c > top {
			top = c
		}
		samples[i] = float64(c)
	}
	if total == 0 {
		return MoveSpread{Moves: len(counts)}
	}

	var entropy float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}

	return MoveSpread{
		Moves:   len(counts),
		Total:   total,
		Top:     float64(top) / float64(total),
		Entropy: entropy,
		Mean:    stat.Mean(samples, nil),
		StdDev:  stat.StdDev(samples, nil),
	}
}
