package engine

import (
	"unsafe"

	mg "pelican/pelicanmg"
)

// Bound flags for stored scores.
const (
	ExactBound uint8 = iota
	LowerBound
	UpperBound
)

// TTEntry is one transposition table slot.
type TTEntry struct {
	Key   uint64
	Move  mg.Move
	Score int32
	Depth int8
	Flag  uint8
}

// TransTable is a fixed-capacity hash of search results indexed by
// key mod capacity with always-replace on collision. Always-replace
// measurably outperforms depth-preferred at this engine's size; the
// replacement policy is the first knob to revisit when scaling up.
type TransTable struct {
	entries []TTEntry
	size    uint64
}

// NewTransTable allocates a table of roughly sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	count := uint64(sizeMB) * 1024 * 1024 / entrySize
	if count == 0 {
		count = 1
	}
	return &TransTable{
		entries: make([]TTEntry, count),
		size:    count,
	}
}

// Clear wipes every entry.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Probe returns the slot for the key and whether it actually belongs to
// this position; collisions are detected by key equality.
func (tt *TransTable) Probe(key uint64) (*TTEntry, bool) {
	entry := &tt.entries[key%tt.size]
	return entry, entry.Key == key
}

// Store writes an entry, adjusting mate scores to be relative to the
// storing node: the mate score's magnitude grows by ply on the way in
// (ScoreFrom shrinks it by the probing ply on the way out), so the
// table holds the distance to mate from the stored position itself.
func (tt *TransTable) Store(key uint64, depth int8, ply int, move mg.Move, score int32, flag uint8) {
	if score > mateThreshold {
		score += int32(ply)
	} else if score < -mateThreshold {
		score -= int32(ply)
	}
	tt.entries[key%tt.size] = TTEntry{
		Key:   key,
		Move:  move,
		Score: score,
		Depth: depth,
		Flag:  flag,
	}
}

// ScoreFrom converts a stored score back to the probing node's ply.
func (tt *TransTable) ScoreFrom(score int32, ply int) int32 {
	if score > mateThreshold {
		return score - int32(ply)
	}
	if score < -mateThreshold {
		return score + int32(ply)
	}
	return score
}
