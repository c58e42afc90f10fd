package pelicanmg

import "testing"

func applyUCIMoves(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, uci := range moves {
		m, err := b.ParseMove(uci)
		if err != nil {
			t.Fatalf("parse %q: %v", uci, err)
		}
		b.MakeMove(m)
	}
}

func TestTranspositionsHashEqual(t *testing.T) {
	a, err := ParseFEN(Startpos)
	if err != nil {
		t.Fatal(err)
	}
	applyUCIMoves(t, a, "e2e3", "a7a6", "d2d3")

	b, err := ParseFEN(Startpos)
	if err != nil {
		t.Fatal(err)
	}
	applyUCIMoves(t, b, "d2d3", "a7a6", "e2e3")

	if a.Hash() != b.Hash() {
		t.Fatalf("transposed move orders hash differently: %x vs %x", a.Hash(), b.Hash())
	}
}

func TestMeaninglessEnPassantHashesEqual(t *testing.T) {
	// After 1.e4 no black pawn can capture on e3, so the position must
	// hash the same whether the FEN carries the ep square or not.
	a, err := ParseFEN(Startpos)
	if err != nil {
		t.Fatal(err)
	}
	applyUCIMoves(t, a, "e2e4")

	b, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("dead en passant square changed the hash: %x vs %x", a.Hash(), b.Hash())
	}
}

func TestMeaningfulEnPassantHashesDiffer(t *testing.T) {
	// With a black pawn on d4 the ep capture d4xe3 exists, so the ep
	// square must be part of the hash.
	withEP, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")
	if err != nil {
		t.Fatal(err)
	}
	withoutEP, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}
	if withEP.Hash() == withoutEP.Hash() {
		t.Fatalf("live en passant square did not change the hash")
	}
}

func TestSideToMoveChangesHash(t *testing.T) {
	white, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	black, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if white.Hash() == black.Hash() {
		t.Fatalf("side to move not part of the hash")
	}
}

func TestIncrementalKeyMatchesScratchThroughEPChain(t *testing.T) {
	b, err := ParseFEN(Startpos)
	if err != nil {
		t.Fatal(err)
	}
	// 2...d7d5 creates a meaningful ep square and 3.e5d6 takes it.
	for _, uci := range []string{"e2e4", "c7c5", "e4e5", "d7d5", "e5d6", "c8d7"} {
		applyUCIMoves(t, b, uci)
		if got, want := b.Hash(), b.ComputeKey(); got != want {
			t.Fatalf("after %s: incremental %x != scratch %x", uci, got, want)
		}
	}
}
