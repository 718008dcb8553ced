package index

import (
	"strings"
	"testing"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	ix := New()
	ix.IngestMoves([]string{"e2e4", "e7e5", "g1f3"})
	ix.IngestGame("alice", aliceWinPGN)
	ix.IngestGame("alice", `[Event "Test"]
[White "bob"]
[Black "alice"]
[Result "0-1"]

1. d4 Nf6 2. c4 e6 0-1
`)
	if ix.Len() == 0 {
		t.Fatal("setup produced an empty index")
	}
	return ix
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	ix := buildTestIndex(t)

	data, err := ix.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if back.Len() != ix.Len() {
		t.Fatalf("round trip Len() = %d, want %d", back.Len(), ix.Len())
	}

	for _, fen := range ix.Positions() {
		a, b := ix.Bucket(fen), back.Bucket(fen)
		if b == nil {
			t.Fatalf("round trip lost bucket %q", fen)
		}
		if a.Total != b.Total {
			t.Errorf("%s: Total %d != %d", fen, a.Total, b.Total)
		}
		if a.Results != b.Results {
			t.Errorf("%s: Results %+v != %+v", fen, a.Results, b.Results)
		}
		assertSameCountMap(t, fen+"/moves", a.Moves, b.Moves)
		assertSameCountMap(t, fen+"/to", a.To, b.To)
		assertSameCountMap(t, fen+"/from", a.From, b.From)
		assertSameRole(t, fen+"/user", a.User, b.User)
		assertSameRole(t, fen+"/opp", a.Opp, b.Opp)
		assertSameRole(t, fen+"/userWhite", a.UserWhite, b.UserWhite)
		assertSameRole(t, fen+"/userBlack", a.UserBlack, b.UserBlack)
		assertSameRole(t, fen+"/oppWhite", a.OppWhite, b.OppWhite)
		assertSameRole(t, fen+"/oppBlack", a.OppBlack, b.OppBlack)
	}
}

func assertSameRole(t *testing.T, label string, a, b RoleCounts) {
	t.Helper()
	if a.Total != b.Total {
		t.Errorf("%s: Total %d != %d", label, a.Total, b.Total)
	}
	assertSameCountMap(t, label+"/moves", a.Moves, b.Moves)
	assertSameCountMap(t, label+"/to", a.To, b.To)
}

func assertSameCountMap(t *testing.T, label string, a, b *CountMap) {
	t.Helper()
	ak, bk := a.Keys(), b.Keys()
	if len(ak) != len(bk) {
		t.Errorf("%s: key count %d != %d", label, len(ak), len(bk))
		return
	}
	// Insertion order must survive the round trip, not just the counts.
	for i := range ak {
		if ak[i] != bk[i] {
			t.Errorf("%s: key order diverged at %d: %q != %q", label, i, ak[i], bk[i])
		}
		if a.Get(ak[i]) != b.Get(ak[i]) {
			t.Errorf("%s: count for %q: %d != %d", label, ak[i], a.Get(ak[i]), b.Get(ak[i]))
		}
	}
}

func TestDecode_MissingOptionalFields(t *testing.T) {
	// An older-format record carrying only global counters: the role and
	// role+color groups load as zero, never as an error.
	blob := `{"version":1,"positions":[{"fen":"some position","total":2,"moves":[["e2e4",2]],"to":[["e4",2]],"from":[["e2",2]]}]}`
	ix, err := Decode([]byte(blob))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	b := ix.Bucket("some position")
	if b == nil {
		t.Fatal("bucket missing")
	}
	if b.Total != 2 || b.Moves.Get("e2e4") != 2 {
		t.Errorf("global counters wrong: total=%d moves=%d", b.Total, b.Moves.Get("e2e4"))
	}
	if b.User.Total != 0 || b.Opp.Total != 0 || b.Results.Total() != 0 {
		t.Error("missing optional fields did not default to zero")
	}
}

func TestDecode_BareRecord(t *testing.T) {
	ix, err := Decode([]byte(`{"version":1,"positions":[{"fen":"p","total":0}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if b := ix.Bucket("p"); b == nil || b.Moves.Len() != 0 {
		t.Error("bare record should decode to an empty bucket")
	}
}

func TestDecode_Invalid(t *testing.T) {
	cases := []struct {
		name string
		blob string
	}{
		{"not json", "###"},
		{"wrong shape", `[1,2,3]`},
		{"missing fen", `{"version":1,"positions":[{"total":1}]}`},
		{"future version", `{"version":99,"positions":[]}`},
		{"corrupt count map", `{"version":1,"positions":[{"fen":"p","moves":{"e2e4":1}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.blob)); err == nil {
				t.Errorf("Decode(%s) succeeded, want error", tc.blob)
			}
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	ix := buildTestIndex(t)
	a, err := ix.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b, err := ix.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(a) != string(b) {
		t.Error("Encode() is not deterministic for an unmodified index")
	}
}

func TestEncode_OmitsEmptyGroups(t *testing.T) {
	ix := New()
	ix.IngestMoves([]string{"e2e4"})
	data, err := ix.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(string(data), `"user"`) || strings.Contains(string(data), `"opp"`) {
		t.Errorf("identity-agnostic snapshot should omit role groups: %s", data)
	}
}
