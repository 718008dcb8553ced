package index

import (
	"encoding/json"
	"fmt"
)

// FormatVersion is the current snapshot format version.
const FormatVersion = 1

// snapshot is the wire form of a whole index. Positions appear in bucket
// creation order so that encoding is deterministic.
type snapshot struct {
	Version   int              `json:"version"`
	Positions []positionRecord `json:"positions"`
}

// positionRecord is the wire form of one bucket. Count maps serialize as
// lists of [key, count] pairs in first-insertion order; pair order is
// significant and survives a round trip. Every field past the global
// counters is optional on read so that older snapshots, written before
// the role and role+color groups existed, still load with those groups
// empty.
type positionRecord struct {
	FEN     string    `json:"fen"`
	Total   int       `json:"total"`
	Moves   *CountMap `json:"moves,omitempty"`
	To      *CountMap `json:"to,omitempty"`
	From    *CountMap `json:"from,omitempty"`
	Results []int     `json:"results,omitempty"` // [win, loss, draw]

	User *roleRecord `json:"user,omitempty"`
	Opp  *roleRecord `json:"opp,omitempty"`

	UserWhite *roleRecord `json:"user_white,omitempty"`
	UserBlack *roleRecord `json:"user_black,omitempty"`
	OppWhite  *roleRecord `json:"opp_white,omitempty"`
	OppBlack  *roleRecord `json:"opp_black,omitempty"`
}

// roleRecord is the wire form of one role or role+color counter group.
type roleRecord struct {
	Total int       `json:"total"`
	Moves *CountMap `json:"moves,omitempty"`
	To    *CountMap `json:"to,omitempty"`
}

// Encode serializes the index to its snapshot form.
func (ix *Index) Encode() ([]byte, error) {
	snap := snapshot{
		Version:   FormatVersion,
		Positions: make([]positionRecord, 0, len(ix.order)),
	}
	for _, fen := range ix.order {
		snap.Positions = append(snap.Positions, encodeBucket(fen, ix.buckets[fen]))
	}
	return json.Marshal(snap)
}

// Decode reconstructs an index from snapshot data. Missing optional
// fields decode to zero counts; a structurally invalid document fails the
// whole decode, leaving no index available.
func Decode(data []byte) (*Index, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version > FormatVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, FormatVersion)
	}

	ix := New()
	for _, rec := range snap.Positions {
		if rec.FEN == "" {
			return nil, fmt.Errorf("snapshot contains a position record without a fen")
		}
		b := ix.bucket(rec.FEN)
		b.Total = rec.Total
		decodeCountMap(&b.Moves, rec.Moves)
		decodeCountMap(&b.To, rec.To)
		decodeCountMap(&b.From, rec.From)
		if len(rec.Results) >= 3 {
			b.Results = Results{Win: rec.Results[0], Loss: rec.Results[1], Draw: rec.Results[2]}
		}
		decodeRole(&b.User, rec.User)
		decodeRole(&b.Opp, rec.Opp)
		decodeRole(&b.UserWhite, rec.UserWhite)
		decodeRole(&b.UserBlack, rec.UserBlack)
		decodeRole(&b.OppWhite, rec.OppWhite)
		decodeRole(&b.OppBlack, rec.OppBlack)
	}
	return ix, nil
}

func encodeBucket(fen string, b *Bucket) positionRecord {
	rec := positionRecord{
		FEN:   fen,
		Total: b.Total,
		Moves: omitEmpty(b.Moves),
		To:    omitEmpty(b.To),
		From:  omitEmpty(b.From),
	}
	if b.Results != (Results{}) {
		rec.Results = []int{b.Results.Win, b.Results.Loss, b.Results.Draw}
	}
	rec.User = encodeRole(b.User)
	rec.Opp = encodeRole(b.Opp)
	rec.UserWhite = encodeRole(b.UserWhite)
	rec.UserBlack = encodeRole(b.UserBlack)
	rec.OppWhite = encodeRole(b.OppWhite)
	rec.OppBlack = encodeRole(b.OppBlack)
	return rec
}

func encodeRole(rc RoleCounts) *roleRecord {
	if rc.Total == 0 && rc.Moves.Len() == 0 && rc.To.Len() == 0 {
		return nil
	}
	return &roleRecord{Total: rc.Total, Moves: omitEmpty(rc.Moves), To: omitEmpty(rc.To)}
}

func decodeRole(dst *RoleCounts, src *roleRecord) {
	if src == nil {
		return
	}
	dst.Total = src.Total
	decodeCountMap(&dst.Moves, src.Moves)
	decodeCountMap(&dst.To, src.To)
}

func decodeCountMap(dst **CountMap, src *CountMap) {
	if src != nil {
		*dst = src
	}
}

// omitEmpty maps an empty count map to nil so that omitempty drops it.
func omitEmpty(m *CountMap) *CountMap {
	if m == nil || m.Len() == 0 {
		return nil
	}
	return m
}
