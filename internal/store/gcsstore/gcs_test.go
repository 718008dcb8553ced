package gcsstore

import (
	"testing"

	"github.com/discochess/repertoire/internal/codec/zstdcodec"
)

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c", "a/b/c/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			WithPrefix(tt.input)(s)
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_blobKey(t *testing.T) {
	s := &Store{codec: zstdcodec.New()}

	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"", "alice", "snapshots/alice.zst"},
		{"env/prod/", "alice", "env/prod/snapshots/alice.zst"},
		{"", "alice-blitz", "snapshots/alice-blitz.zst"},
	}

	for _, tt := range tests {
		s.prefix = tt.prefix
		if got := s.blobKey(tt.name); got != tt.want {
			t.Errorf("blobKey(%q) with prefix %q = %q, want %q", tt.name, tt.prefix, got, tt.want)
		}
	}
}
