// Package replay walks recorded chess games and emits per-ply facts for
// index aggregation: the position before each move, the move played in
// compact UCI form, the mover's color, and whether the mover is the
// tracked identity.
package replay

import (
	"strings"

	"github.com/notnil/chess"
)

// Color identifies the mover of a fact. ColorNone means the fact carries
// no mover attribution (bare move-list replay).
type Color uint8

const (
	ColorNone Color = iota
	White
	Black
)

// String returns "white", "black", or "" for ColorNone.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

// Fact is one ply of a replayed game. PositionBefore is the full FEN of
// the board before the move was made; MoveKey is the resolved move in UCI
// form (from-square, to-square, optional promotion letter), so castling,
// en passant and promotions are normalized regardless of source notation.
type Fact struct {
	PositionBefore string
	MoveKey        string
	Color          Color
	IsTracked      bool
	HasRole        bool
}

// uci resolves moves to UCI move keys.
var uci = chess.UCINotation{}

// ParseGame parses a single PGN game record. A record that cannot be
// parsed, including one containing an illegal move, yields an error and
// should be skipped by the caller.
func ParseGame(record string) (*chess.Game, error) {
	fn, err := chess.PGN(strings.NewReader(record))
	if err != nil {
		return nil, err
	}
	return chess.NewGame(fn), nil
}

// Game emits one fact per ply of a parsed game, attributed to the tracked
// identity. The identity's color is determined once by case-insensitive
// comparison with the White and Black header tags; if it matches neither,
// the game is not this identity's and no facts are emitted.
func Game(g *chess.Game, identity string) []Fact {
	color := IdentityColor(g, identity)
	if color == ColorNone {
		return nil
	}

	positions := g.Positions()
	moves := g.Moves()

	facts := make([]Fact, 0, len(moves))
	for i, m := range moves {
		pos := positions[i]
		mover := White
		if pos.Turn() == chess.Black {
			mover = Black
		}
		facts = append(facts, Fact{
			PositionBefore: pos.String(),
			MoveKey:        uci.Encode(pos, m),
			Color:          mover,
			IsTracked:      mover == color,
			HasRole:        true,
		})
	}
	return facts
}

// Moves replays a bare sequence of UCI moves from the standard starting
// position, with no identity or color attribution. Replay stops at the
// first move that fails to apply; facts for the valid prefix are kept.
func Moves(moves []string) []Fact {
	g := chess.NewGame(chess.UseNotation(chess.UCINotation{}))

	facts := make([]Fact, 0, len(moves))
	for _, mv := range moves {
		pos := g.Position()
		if err := g.MoveStr(mv); err != nil {
			break
		}
		applied := g.Moves()
		facts = append(facts, Fact{
			PositionBefore: pos.String(),
			MoveKey:        uci.Encode(pos, applied[len(applied)-1]),
		})
	}
	return facts
}

// IdentityColor determines which color the tracked identity played in a
// game, matching case-insensitively against the White and Black tags.
// Returns ColorNone when the identity matches neither player.
func IdentityColor(g *chess.Game, identity string) Color {
	if white := g.GetTagPair("White"); white != nil && strings.EqualFold(white.Value, identity) {
		return White
	}
	if black := g.GetTagPair("Black"); black != nil && strings.EqualFold(black.Value, identity) {
		return Black
	}
	return ColorNone
}
