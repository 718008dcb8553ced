package index

// Results holds outcome counters attributed to the tracked identity,
// incremented at most once per game per position.
type Results struct {
	Win  int
	Loss int
	Draw int
}

// Total returns win+loss+draw.
func (r Results) Total() int {
	return r.Win + r.Loss + r.Draw
}

// RoleCounts is one role (or role+color) slice of a bucket's counters:
// moves restricted to the tracked identity or to opponents, optionally
// further restricted by the mover's color.
type RoleCounts struct {
	Total int
	Moves *CountMap
	To    *CountMap
}

func newRoleCounts() RoleCounts {
	return RoleCounts{Moves: NewCountMap(), To: NewCountMap()}
}

func (rc *RoleCounts) add(moveKey, toSquare string) {
	rc.Total++
	rc.Moves.Inc(moveKey, 1)
	rc.To.Inc(toSquare, 1)
}

func (rc *RoleCounts) clone() RoleCounts {
	return RoleCounts{Total: rc.Total, Moves: rc.Moves.Clone(), To: rc.To.Clone()}
}

// Bucket aggregates every move ever played from one position. The global
// counters cover all ingested moves; the role and role+color groups are
// populated only by identity-aware ingestion.
type Bucket struct {
	Total int
	Moves *CountMap // move key -> count
	To    *CountMap // destination square -> count
	From  *CountMap // source square -> count

	Results Results

	User RoleCounts
	Opp  RoleCounts

	UserWhite RoleCounts
	UserBlack RoleCounts
	OppWhite  RoleCounts
	OppBlack  RoleCounts
}

func newBucket() *Bucket {
	return &Bucket{
		Moves:     NewCountMap(),
		To:        NewCountMap(),
		From:      NewCountMap(),
		User:      newRoleCounts(),
		Opp:       newRoleCounts(),
		UserWhite: newRoleCounts(),
		UserBlack: newRoleCounts(),
		OppWhite:  newRoleCounts(),
		OppBlack:  newRoleCounts(),
	}
}

// Clone returns a deep copy of the bucket.
func (b *Bucket) Clone() *Bucket {
	return &Bucket{
		Total:     b.Total,
		Moves:     b.Moves.Clone(),
		To:        b.To.Clone(),
		From:      b.From.Clone(),
		Results:   b.Results,
		User:      b.User.clone(),
		Opp:       b.Opp.clone(),
		UserWhite: b.UserWhite.clone(),
		UserBlack: b.UserBlack.clone(),
		OppWhite:  b.OppWhite.clone(),
		OppBlack:  b.OppBlack.clone(),
	}
}
