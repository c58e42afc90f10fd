package pelicanmg

import "testing"

func seeMove(t *testing.T, fen, uci string) (*Board, Move) {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	m, err := b.ParseMove(uci)
	if err != nil {
		t.Fatalf("parse move: %v", err)
	}
	return b, m
}

func TestSEEWinningCapture(t *testing.T) {
	// Rook takes an undefended pawn.
	b, m := seeMove(t, "7k/8/8/4p3/8/8/4R3/7K w - - 0 1", "e2e5")
	if got := b.See(m); got != SeeValue[Pawn] {
		t.Fatalf("SEE: got %d want %d", got, SeeValue[Pawn])
	}
}

func TestSEEEqualTrade(t *testing.T) {
	// Pawn takes a pawn defended by the king: win one, lose one.
	b, m := seeMove(t, "8/8/4k3/3pp3/4P3/3K4/8/8 w - - 0 1", "e4d5")
	if got := b.See(m); got != 0 {
		t.Fatalf("SEE: got %d want 0", got)
	}
}

func TestSEELosingCapture(t *testing.T) {
	// Queen takes a pawn defended by a pawn.
	b, m := seeMove(t, "7k/8/3p4/4p3/3Q4/8/8/7K w - - 0 1", "d4e5")
	if got := b.See(m); got != SeeValue[Pawn]-SeeValue[Queen] {
		t.Fatalf("SEE: got %d want %d", got, SeeValue[Pawn]-SeeValue[Queen])
	}
}

func TestSEEHandlesEnPassantCapture(t *testing.T) {
	b, m := seeMove(t, "7k/8/8/3pP3/8/8/8/6K1 w - d6 0 1", "e5d6")
	if m.Flag() != MoveEnPassant {
		t.Fatalf("expected en passant flag, got %d", m.Flag())
	}
	if got := b.See(m); got != SeeValue[Pawn] {
		t.Fatalf("SEE: got %d want %d", got, SeeValue[Pawn])
	}
}

func TestSEEXrayRecapture(t *testing.T) {
	// Doubled rooks on both sides: the e5 pawn is defended as often as
	// it is attacked, so the initiator ends a rook down. The rooks
	// stacked behind only join through x-ray recomputation.
	b, m := seeMove(t, "4r2k/4r3/8/4p3/8/8/4R3/4R2K w - - 0 1", "e2e5")
	want := SeeValue[Pawn] - SeeValue[Rook] + SeeValue[Rook] - SeeValue[Rook]
	if got := b.See(m); got != want {
		t.Fatalf("SEE: got %d want %d", got, want)
	}
}

func TestSEEKingCannotRecaptureDefended(t *testing.T) {
	// The black king is the pawn's only defender, but the rook behind
	// the queen keeps d4 covered, so the king never recaptures and the
	// pawn is simply won.
	b, m := seeMove(t, "8/8/8/3k4/3p4/8/3Q4/3R3K w - - 0 1", "d2d4")
	if got := b.See(m); got != SeeValue[Pawn] {
		t.Fatalf("SEE: got %d want %d", got, SeeValue[Pawn])
	}
}

func TestSeeGEThreshold(t *testing.T) {
	b, m := seeMove(t, "7k/8/3p4/4p3/3Q4/8/8/7K w - - 0 1", "d4e5")
	if b.SeeGE(m, -SeeValue[Pawn]) {
		t.Fatalf("losing a queen for a pawn should fail the one-pawn threshold")
	}
	b, m = seeMove(t, "7k/8/8/4p3/8/8/4R3/7K w - - 0 1", "e2e5")
	if !b.SeeGE(m, SeeValue[Pawn]) {
		t.Fatalf("winning a clean pawn should pass the pawn threshold")
	}
}
