package engine

import (
	mg "pelican/pelicanmg"
)

// Picker score bands. Winning and losing captures sit on opposite sides
// of zero so a single selection sort keeps them apart; promotions top
// everything, underpromotions sink below losing captures.
const (
	scoreQueenPromo  int32 = 1_000_000_000 - 1
	scoreKnightPromo int32 = 1_000_000_000 - 2
	scoreUnderPromo  int32 = -1_000_000_000
	baseGoodCapture  int32 = 100_000_000
	baseBadCapture   int32 = -100_000_000
)

// MVV/LVA, indexed [victim][attacker]: the victim's rank dominates and
// a cheaper attacker breaks the tie upward.
var mvvLva = [7][7]int32{
	mg.Pawn:   {0, 15, 14, 13, 12, 11, 10},
	mg.Knight: {0, 25, 24, 23, 22, 21, 20},
	mg.Bishop: {0, 35, 34, 33, 32, 31, 30},
	mg.Rook:   {0, 45, 44, 43, 42, 41, 40},
	mg.Queen:  {0, 55, 54, 53, 52, 51, 50},
}

type pickerStage uint8

const (
	stageTTMove pickerStage = iota
	stageGenTacticals
	stageGoodTacticals
	stageFirstKiller
	stageSecondKiller
	stageGenQuiets
	stageQuiets
	stageBadTacticals
	stageDone
)

type scoredMove struct {
	move  mg.Move
	score int32
}

// MovePicker yields the moves of a position one at a time in the order
// most likely to cut, generating each class only when the previous one
// ran dry. In quiescence mode it stops after the good tacticals.
type MovePicker struct {
	board      *mg.Board
	hist       *HistoryTables
	ttMove     mg.Move
	prevMove   mg.Move
	ply        int
	quiescence bool

	stage        pickerStage
	tacticals    []scoredMove
	badTacticals []scoredMove
	quiets       []scoredMove
	idx          int
	killers      [2]mg.Move
	genBuf       [256]mg.Move
}

// NewMovePicker builds a picker for a full-width node.
func NewMovePicker(b *mg.Board, ttMove mg.Move, hist *HistoryTables, ply int, prevMove mg.Move) *MovePicker {
	return &MovePicker{
		board:    b,
		hist:     hist,
		ttMove:   ttMove,
		prevMove: prevMove,
		ply:      ply,
	}
}

// NewQuiescencePicker builds a picker that only yields tactical moves.
func NewQuiescencePicker(b *mg.Board, ttMove mg.Move, hist *HistoryTables, ply int, prevMove mg.Move) *MovePicker {
	mp := NewMovePicker(b, ttMove, hist, ply, prevMove)
	mp.quiescence = true
	return mp
}

// Next returns the next candidate move, NullMove when exhausted.
func (mp *MovePicker) Next() mg.Move {
	b := mp.board

	if mp.stage == stageTTMove {
		mp.stage = stageGenTacticals
		if mp.ttMove != mg.NullMove && b.IsPseudoLegal(mp.ttMove) {
			if !mp.quiescence || b.IsCapture(mp.ttMove) || mp.ttMove.Promotion() != mg.NoPieceType {
				return mp.ttMove
			}
		}
	}

	if mp.stage == stageGenTacticals {
		mp.stage = stageGoodTacticals
		mp.idx = 0
		for _, m := range b.GenerateMoves(mg.GenTacticals, mp.genBuf[:0]) {
			if m == mp.ttMove {
				continue
			}
			mp.tacticals = append(mp.tacticals, scoredMove{m, mp.scoreTactical(m)})
		}
	}

	if mp.stage == stageGoodTacticals {
		for mp.idx < len(mp.tacticals) {
			best := selectionSort(mp.tacticals, mp.idx)
			mp.idx++
			// Tacticals that lose more than a pawn of material wait
			// until the quiets have had their chance.
			if (mp.quiescence && best.score < 0) || best.score <= baseBadCapture+64 {
				mp.badTacticals = append(mp.badTacticals, best)
				continue
			}
			return best.move
		}
		if mp.quiescence {
			mp.stage = stageDone
			return mg.NullMove
		}
		mp.stage = stageFirstKiller
	}

	if mp.stage == stageFirstKiller {
		mp.stage = stageSecondKiller
		mp.killers[0] = mp.hist.Killer(mp.ply, 0)
		if mp.yieldableKiller(mp.killers[0]) {
			return mp.killers[0]
		}
		mp.killers[0] = mg.NullMove
	}

	if mp.stage == stageSecondKiller {
		mp.stage = stageGenQuiets
		mp.killers[1] = mp.hist.Killer(mp.ply, 1)
		if mp.yieldableKiller(mp.killers[1]) {
			return mp.killers[1]
		}
		mp.killers[1] = mg.NullMove
	}

	if mp.stage == stageGenQuiets {
		mp.stage = stageQuiets
		mp.idx = 0
		side := b.SideToMove()
		for _, m := range b.GenerateMoves(mg.GenQuiets, mp.genBuf[:0]) {
			if m == mp.ttMove || m == mp.killers[0] || m == mp.killers[1] {
				continue
			}
			mp.quiets = append(mp.quiets, scoredMove{m, mp.hist.QuietScore(side, m, mp.prevMove)})
		}
	}

	if mp.stage == stageQuiets {
		if mp.idx < len(mp.quiets) {
			best := selectionSort(mp.quiets, mp.idx)
			mp.idx++
			return best.move
		}
		mp.stage = stageBadTacticals
		mp.idx = 0
	}

	if mp.stage == stageBadTacticals {
		if mp.idx < len(mp.badTacticals) {
			best := selectionSort(mp.badTacticals, mp.idx)
			mp.idx++
			return best.move
		}
		mp.stage = stageDone
	}

	return mg.NullMove
}

// yieldableKiller filters stale killers: they must still be playable
// here, quiet, and not already served as the TT move.
func (mp *MovePicker) yieldableKiller(k mg.Move) bool {
	return k != mg.NullMove && k != mp.ttMove &&
		!mp.board.IsCapture(k) && k.Promotion() == mg.NoPieceType &&
		mp.board.IsPseudoLegal(k)
}

// selectionSort pulls the best-scored remaining entry to index idx and
// returns it. Cheaper than a full sort because most nodes cut within
// the first few moves.
func selectionSort(list []scoredMove, idx int) scoredMove {
	bestIdx := idx
	for i := idx + 1; i < len(list); i++ {
		if list[i].score > list[bestIdx].score {
			bestIdx = i
		}
	}
	list[idx], list[bestIdx] = list[bestIdx], list[idx]
	return list[idx]
}

func (mp *MovePicker) scoreTactical(m mg.Move) int32 {
	b := mp.board
	s := b.State()

	// Queen and knight promotions get priority; rook and bishop
	// underpromotions almost never beat the queen line and would only
	// pollute the ordering.
	switch m.Promotion() {
	case mg.NoPieceType:
	case mg.Queen:
		return scoreQueenPromo
	case mg.Knight:
		return scoreKnightPromo
	default:
		return scoreUnderPromo
	}

	victim := s.PieceOn(m.To())
	if m.Flag() == mg.MoveEnPassant {
		victim = mg.Pawn
	}
	attacker := s.PieceOn(m.From())
	score := mvvLva[victim][attacker]
	if b.SeeGE(m, -mg.SeeValue[mg.Pawn]) {
		return baseGoodCapture + score
	}
	return baseBadCapture + score
}
