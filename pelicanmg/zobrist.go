package pelicanmg

import "math/rand"

// Zobrist tables: one key per (color, piece, square), one per castling
// rights subset, one per en passant file and one for the side to move.
var (
	zobristPiece     [2][7][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	// Fixed seed so transposition hits are reproducible across runs.
	rnd := rand.New(rand.NewSource(0x9E11CA4))

	for c := 0; c < 2; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][pt][sq] = rnd.Uint64()
			}
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// epKey returns the en passant contribution to the key. The file key is
// folded in only when a pawn of the side to move actually stands beside
// the double-pushed pawn, so positions that differ only in a dead ep
// square hash identically. Callers must therefore evaluate it after the
// side to move has been decided (the capturer's side).
func (s *BoardState) epKey() uint64 {
	if s.EnPassant == NoSquare {
		return 0
	}
	var pushed Square
	if s.SideToMove == White {
		pushed = s.EnPassant - 8
	} else {
		pushed = s.EnPassant + 8
	}
	pushedBB := SquareBB(pushed)
	if (ShiftEast(pushedBB)|ShiftWest(pushedBB))&s.Pieces[s.SideToMove][Pawn] == 0 {
		return 0
	}
	return zobristEnPassant[FileOf(s.EnPassant)]
}

// ComputeKey folds the key from scratch over the whole position. The
// incrementally maintained key must always equal it.
func (s *BoardState) ComputeKey() uint64 {
	var key uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := s.Pieces[c][pt]
			for bb != 0 {
				key ^= zobristPiece[c][pt][PopLSB(&bb)]
			}
		}
	}
	key ^= zobristCastle[s.Castling]
	key ^= s.epKey()
	if s.SideToMove == Black {
		key ^= zobristSide
	}
	return key
}

// ComputeKey recomputes the current position's key from scratch.
func (b *Board) ComputeKey() uint64 { return b.state.ComputeKey() }
