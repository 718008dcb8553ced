// Package index implements the position-keyed move statistics store: one
// bucket of counters per position ever reached in the ingested games,
// updated by folding replay facts, queryable for top moves and outcome
// statistics, and serializable to a versioned snapshot format.
package index

import (
	"sort"

	"github.com/notnil/chess"

	"github.com/discochess/repertoire/internal/replay"
)

// Index maps position identifiers (full FEN strings) to buckets. It is a
// plain synchronous structure with a single owner; callers needing
// concurrent mutation must serialize access externally.
type Index struct {
	buckets map[string]*Bucket
	order   []string // bucket creation order, for deterministic snapshots
}

// New returns an empty index.
func New() *Index {
	return &Index{buckets: make(map[string]*Bucket)}
}

// Len returns the number of distinct positions held.
func (ix *Index) Len() int {
	return len(ix.buckets)
}

// Clear discards all buckets.
func (ix *Index) Clear() {
	ix.buckets = make(map[string]*Bucket)
	ix.order = nil
}

// Positions returns all position identifiers in bucket creation order.
func (ix *Index) Positions() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// Bucket returns a copy of the bucket for a position, or nil if the
// position has never been seen. The copy is not a live handle; mutating
// it does not affect the index.
func (ix *Index) Bucket(position string) *Bucket {
	b, ok := ix.buckets[position]
	if !ok {
		return nil
	}
	return b.Clone()
}

// IngestMoves replays a bare sequence of UCI moves from the standard
// starting position and applies global-counter updates only. Replay stops
// at the first illegal or unparseable move, keeping the valid prefix.
// Returns the number of plies indexed.
func (ix *Index) IngestMoves(moves []string) int {
	facts := replay.Moves(moves)
	for _, f := range facts {
		ix.apply(f)
	}
	return len(facts)
}

// IngestGame ingests a single PGN game record with identity attribution.
// Games that cannot be parsed, and games in which the identity did not
// play, are skipped whole. Never fails: malformed input degrades to a
// skip, not an error. Returns the number of plies indexed.
func (ix *Index) IngestGame(identity, record string) int {
	g, err := replay.ParseGame(record)
	if err != nil {
		return 0
	}
	return ix.IngestParsed(identity, g)
}

// IngestParsed ingests an already-parsed game with identity attribution,
// updating global, role, and role+color counters, then attributing the
// game's outcome once per distinct position visited.
func (ix *Index) IngestParsed(identity string, g *chess.Game) int {
	facts := replay.Game(g, identity)
	if len(facts) == 0 {
		return 0
	}
	result := replay.Resolve(g.Outcome(), replay.IdentityColor(g, identity))
	return ix.ingestFacts(facts, result)
}

// ingestFacts folds replay facts into the counters, then attributes the
// game's outcome once per distinct position the facts visited.
func (ix *Index) ingestFacts(facts []replay.Fact, result replay.Result) int {
	for _, f := range facts {
		ix.apply(f)
	}
	if result != replay.ResultNone {
		for pos := range replay.VisitedPositions(facts) {
			ix.attributeOutcome(pos, result)
		}
	}
	return len(facts)
}

// MoveCount is one entry of a top-moves query result.
type MoveCount struct {
	Move  string
	Count int
}

// DefaultTopMoves is the limit used when TopMoves is called with a
// non-positive limit.
const DefaultTopMoves = 8

// TopMoves returns up to limit moves played from a position, sorted by
// descending count. Ties are broken by first-observation order, so
// repeated calls on an unmodified index return identical results. An
// unknown position yields an empty list.
func (ix *Index) TopMoves(position string, limit int) []MoveCount {
	if limit <= 0 {
		limit = DefaultTopMoves
	}
	b, ok := ix.buckets[position]
	if !ok {
		return nil
	}

	entries := make([]MoveCount, 0, b.Moves.Len())
	for _, p := range b.Moves.Pairs() {
		entries = append(entries, MoveCount{Move: p.Key, Count: p.Count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// ResultStats summarizes the outcomes attributed to a position.
type ResultStats struct {
	Win   int
	Loss  int
	Draw  int
	Total int
}

// ResultStats returns the outcome counters for a position; an unknown
// position yields all zeros.
func (ix *Index) ResultStats(position string) ResultStats {
	b, ok := ix.buckets[position]
	if !ok {
		return ResultStats{}
	}
	return ResultStats{
		Win:   b.Results.Win,
		Loss:  b.Results.Loss,
		Draw:  b.Results.Draw,
		Total: b.Results.Total(),
	}
}

// bucket returns the live bucket for a position, creating it on first use.
func (ix *Index) bucket(position string) *Bucket {
	b, ok := ix.buckets[position]
	if !ok {
		b = newBucket()
		ix.buckets[position] = b
		ix.order = append(ix.order, position)
	}
	return b
}

// apply folds one replay fact into the counters.
func (ix *Index) apply(f replay.Fact) {
	from, to := splitMoveKey(f.MoveKey)
	b := ix.bucket(f.PositionBefore)

	b.Total++
	b.Moves.Inc(f.MoveKey, 1)
	b.To.Inc(to, 1)
	b.From.Inc(from, 1)

	if !f.HasRole {
		return
	}

	if f.IsTracked {
		b.User.add(f.MoveKey, to)
		if f.Color == replay.White {
			b.UserWhite.add(f.MoveKey, to)
		} else {
			b.UserBlack.add(f.MoveKey, to)
		}
	} else {
		b.Opp.add(f.MoveKey, to)
		if f.Color == replay.White {
			b.OppWhite.add(f.MoveKey, to)
		} else {
			b.OppBlack.add(f.MoveKey, to)
		}
	}
}

// attributeOutcome increments one outcome counter for a position.
func (ix *Index) attributeOutcome(position string, result replay.Result) {
	b := ix.bucket(position)
	switch result {
	case replay.ResultWin:
		b.Results.Win++
	case replay.ResultLoss:
		b.Results.Loss++
	case replay.ResultDraw:
		b.Results.Draw++
	}
}

// splitMoveKey splits a UCI move key into its source and destination
// squares. The promotion suffix, if any, stays out of both.
func splitMoveKey(key string) (from, to string) {
	if len(key) < 4 {
		return key, key
	}
	return key[:2], key[2:4]
}
