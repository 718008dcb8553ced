package fen

import (
	"errors"
	"testing"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"full six fields unchanged",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		},
		{
			"four fields padded",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			"five fields padded",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Canonical(tc.in)
			if err != nil {
				t.Fatalf("Canonical() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Canonical() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCanonical_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too few fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"bad piece char", "rnbqkbnr/ppppppp!/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"rank too long", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Canonical(tc.in); !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("Canonical(%q) error = %v, want ErrInvalidFEN", tc.in, err)
			}
		})
	}
}

func TestSideToMove(t *testing.T) {
	if side, err := SideToMove("8/8/8/8/8/8/8/8 b - - 0 1"); err != nil || side != "b" {
		t.Errorf("SideToMove() = %q, %v; want b, nil", side, err)
	}
	if _, err := SideToMove("8/8/8/8/8/8/8/8"); !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("SideToMove() error = %v, want ErrInvalidFEN", err)
	}
}
