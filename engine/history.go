package engine

import (
	mg "pelican/pelicanmg"
)

// butterflyMax keeps history scores below the picker's capture bases;
// reaching it halves the whole table.
const butterflyMax = 10000

// counterBonus lifts the quiet move that refuted the previous move.
const counterBonus = 1000

// HistoryTables holds the searcher's mutable move-ordering heuristics:
// killers per ply, butterfly history per side/from/to, and the counter
// move indexed by the previous move's squares. They live inside the
// searcher context rather than as package globals so tests and future
// parallel searchers each get their own.
type HistoryTables struct {
	killers   [MaxPly + 1][2]mg.Move
	butterfly [2][64][64]int32
	counters  [64][64]mg.Move
}

// InsertKiller records a quiet move that caused a beta cutoff at ply,
// keeping the two most recent distinct killers.
func (h *HistoryTables) InsertKiller(ply int, m mg.Move) {
	if m != h.killers[ply][0] {
		h.killers[ply][1] = h.killers[ply][0]
		h.killers[ply][0] = m
	}
}

// Killer returns the killer move in the given slot for a ply.
func (h *HistoryTables) Killer(ply, slot int) mg.Move {
	return h.killers[ply][slot]
}

// Counter returns the stored refutation of prev, NullMove when none.
func (h *HistoryTables) Counter(prev mg.Move) mg.Move {
	if prev == mg.NullMove {
		return mg.NullMove
	}
	return h.counters[prev.From()][prev.To()]
}

// QuietScore orders quiet moves: raw butterfly history plus a bonus
// when the move counters the previous one.
func (h *HistoryTables) QuietScore(side mg.Color, m, prev mg.Move) int32 {
	score := h.butterfly[side][m.From()][m.To()]
	if h.Counter(prev) == m {
		score += counterBonus
	}
	return score
}

// UpdateQuietCutoff credits a quiet move that cut, debits the quiets
// tried before it, and records it as killer and counter. Bonus grows
// with depth squared so cutoffs near the root dominate.
func (h *HistoryTables) UpdateQuietCutoff(side mg.Color, ply int, m, prev mg.Move, depth int8, tried []mg.Move) {
	h.InsertKiller(ply, m)
	if prev != mg.NullMove {
		h.counters[prev.From()][prev.To()] = m
	}

	bonus := int32(depth) * int32(depth)
	h.butterfly[side][m.From()][m.To()] += bonus
	if h.butterfly[side][m.From()][m.To()] >= butterflyMax {
		h.age(side)
	}
	for _, q := range tried {
		if q == m {
			continue
		}
		if h.butterfly[side][q.From()][q.To()] > 0 {
			h.butterfly[side][q.From()][q.To()] -= bonus
			if h.butterfly[side][q.From()][q.To()] < 0 {
				h.butterfly[side][q.From()][q.To()] = 0
			}
		}
	}
}

func (h *HistoryTables) age(side mg.Color) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			h.butterfly[side][from][to] /= 2
		}
	}
}

// ClearKillers wipes the killer slots; done at each top-level search.
func (h *HistoryTables) ClearKillers() {
	for ply := range h.killers {
		h.killers[ply][0] = mg.NullMove
		h.killers[ply][1] = mg.NullMove
	}
}

// Clear resets every table, as ucinewgame requires.
func (h *HistoryTables) Clear() {
	h.ClearKillers()
	for side := 0; side < 2; side++ {
		for from := 0; from < 64; from++ {
			for to := 0; to < 64; to++ {
				h.butterfly[side][from][to] = 0
			}
		}
	}
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			h.counters[from][to] = mg.NullMove
		}
	}
}
