package engine

import (
	mg "pelican/pelicanmg"
)

// Piece-square tables, written rank 8 first so they read like a board
// from White's side. White lookups flip the square with ^56, Black
// indexes directly.
var pieceSquareTables = [7][64]int32{
	mg.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	mg.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	mg.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	mg.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	mg.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	mg.King: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}

var kingEndgameTable = [64]int32{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

const (
	doubledPawnPenalty    int32 = 12
	rookOpenFileBonus     int32 = 20
	rookSemiOpenFileBonus int32 = 15
	pawnShieldBonus       int32 = 5
	pawnShieldFarBonus    int32 = 4
	endgameMaterialLimit  int32 = 1600
)

// Evaluate scores the position in centipawns from the side to move's
// perspective. It is a pure function of the position; the searcher
// never calls it on terminal positions.
func Evaluate(b *mg.Board) int32 {
	s := b.State()

	score := materialDifference(s)
	score += positionalDifference(s)
	score += doubledPawnDifference(s)
	score += rookFileDifference(s)
	score += kingSafetyDifference(s)
	score += squareControlDifference(b)

	if s.SideToMove == mg.Black {
		return -score
	}
	return score
}

// All helpers below score from White's perspective; Evaluate flips.

func materialDifference(s *mg.BoardState) int32 {
	var material int32
	for pt := mg.Pawn; pt <= mg.Queen; pt++ {
		material += PieceValues[pt] * int32(mg.PopCount(s.Pieces[mg.White][pt]))
		material -= PieceValues[pt] * int32(mg.PopCount(s.Pieces[mg.Black][pt]))
	}
	return material
}

// isEndgame switches the king to its endgame table once the non-rook
// material on the board drops low enough.
func isEndgame(s *mg.BoardState) bool {
	var material int32
	for _, c := range [2]mg.Color{mg.White, mg.Black} {
		material += PieceValues[mg.Pawn] * int32(mg.PopCount(s.Pieces[c][mg.Pawn]))
		material += PieceValues[mg.Knight] * int32(mg.PopCount(s.Pieces[c][mg.Knight]))
		material += PieceValues[mg.Bishop] * int32(mg.PopCount(s.Pieces[c][mg.Bishop]))
		material += PieceValues[mg.Queen] * int32(mg.PopCount(s.Pieces[c][mg.Queen]))
	}
	return material <= endgameMaterialLimit
}

func positionalDifference(s *mg.BoardState) int32 {
	var score int32
	endgame := isEndgame(s)

	for pt := mg.Pawn; pt <= mg.King; pt++ {
		table := &pieceSquareTables[pt]
		if pt == mg.King && endgame {
			table = &kingEndgameTable
		}
		for bb := s.Pieces[mg.White][pt]; bb != 0; {
			score += table[mg.PopLSB(&bb)^56]
		}
		for bb := s.Pieces[mg.Black][pt]; bb != 0; {
			score -= table[mg.PopLSB(&bb)]
		}
	}
	return score
}

func doubledPawnDifference(s *mg.BoardState) int32 {
	var doubled int32
	for file := 0; file < 8; file++ {
		mask := mg.FileBB(file)
		if mg.PopCount(s.Pieces[mg.White][mg.Pawn]&mask) > 1 {
			doubled--
		}
		if mg.PopCount(s.Pieces[mg.Black][mg.Pawn]&mask) > 1 {
			doubled++
		}
	}
	return doubled * doubledPawnPenalty
}

func rookFileDifference(s *mg.BoardState) int32 {
	var score int32
	whitePawns := s.Pieces[mg.White][mg.Pawn]
	blackPawns := s.Pieces[mg.Black][mg.Pawn]

	for bb := s.Pieces[mg.White][mg.Rook]; bb != 0; {
		mask := mg.FileBB(mg.PopLSB(&bb) & 7)
		switch {
		case (whitePawns|blackPawns)&mask == 0:
			score += rookOpenFileBonus
		case whitePawns&mask == 0:
			score += rookSemiOpenFileBonus
		}
	}
	for bb := s.Pieces[mg.Black][mg.Rook]; bb != 0; {
		mask := mg.FileBB(mg.PopLSB(&bb) & 7)
		switch {
		case (whitePawns|blackPawns)&mask == 0:
			score -= rookOpenFileBonus
		case blackPawns&mask == 0:
			score -= rookSemiOpenFileBonus
		}
	}
	return score
}

func kingSafetyDifference(s *mg.BoardState) int32 {
	var score int32

	whiteKing := s.Pieces[mg.White][mg.King]
	shield := mg.ShiftNorthWest(whiteKing) | mg.ShiftNorth(whiteKing) | mg.ShiftNorthEast(whiteKing)
	score += pawnShieldBonus * int32(mg.PopCount(shield&s.Pieces[mg.White][mg.Pawn]))
	shield = mg.ShiftNorth(shield)
	score += pawnShieldFarBonus * int32(mg.PopCount(shield&s.Pieces[mg.White][mg.Pawn]))

	blackKing := s.Pieces[mg.Black][mg.King]
	shield = mg.ShiftSouthWest(blackKing) | mg.ShiftSouth(blackKing) | mg.ShiftSouthEast(blackKing)
	score -= pawnShieldBonus * int32(mg.PopCount(shield&s.Pieces[mg.Black][mg.Pawn]))
	shield = mg.ShiftSouth(shield)
	score -= pawnShieldFarBonus * int32(mg.PopCount(shield&s.Pieces[mg.Black][mg.Pawn]))

	return score
}

func squareControlDifference(b *mg.Board) int32 {
	return int32(mg.PopCount(b.AttackedSquares(mg.White))) -
		int32(mg.PopCount(b.AttackedSquares(mg.Black)))
}
