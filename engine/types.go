package engine

import (
	"fmt"

	mg "pelican/pelicanmg"
)

// Score constants. Mate scores occupy the band above
// MateScore-MaxGamePlies so "mate in N plies" is encoded as
// MateScore-N and stays unambiguous through the whole search.
const (
	MateScore int32 = 32000
	Infinity  int32 = 32500
	DrawScore int32 = 0

	mateThreshold = MateScore - int32(mg.MaxGamePlies)
)

// MaxPly bounds the search stack (killers, PV depth).
const MaxPly = 128

// MaxSearchDepth caps iterative deepening when no depth limit is given.
const MaxSearchDepth = 64

// PieceValues are the evaluator's centipawn material values.
var PieceValues = [7]int32{
	mg.Pawn:   100,
	mg.Knight: 300,
	mg.Bishop: 300,
	mg.Rook:   500,
	mg.Queen:  900,
}

// IsMateScore reports whether the score encodes a forced mate.
func IsMateScore(score int32) bool {
	return abs(score) > mateThreshold
}

// MateIn converts a mate score into full moves, negative when the side
// to move is being mated.
func MateIn(score int32) int {
	if score > 0 {
		return int(MateScore-score+1) / 2
	}
	return -int(MateScore+score) / 2
}

// ScoreString renders a score in UCI form, "cp <n>" or "mate <m>".
func ScoreString(score int32) string {
	if IsMateScore(score) {
		return fmt.Sprintf("mate %d", MateIn(score))
	}
	return fmt.Sprintf("cp %d", score)
}
