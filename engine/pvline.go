package engine

import (
	"strings"

	mg "pelican/pelicanmg"
)

// PVLine accumulates the principal variation as the search unwinds.
type PVLine struct {
	Moves []mg.Move
}

// Clear empties the line.
func (pv *PVLine) Clear() { pv.Moves = pv.Moves[:0] }

// Update sets the line to move followed by the child's line.
func (pv *PVLine) Update(move mg.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns an independent copy.
func (pv *PVLine) Clone() PVLine {
	return PVLine{Moves: append([]mg.Move(nil), pv.Moves...)}
}

// BestMove returns the first move of the line, NullMove when empty.
func (pv *PVLine) BestMove() mg.Move {
	if len(pv.Moves) == 0 {
		return mg.NullMove
	}
	return pv.Moves[0]
}

// String renders the line as space-separated UCI moves.
func (pv *PVLine) String() string {
	parts := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
