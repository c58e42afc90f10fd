package engine

import (
	"sync/atomic"
	"time"

	mg "pelican/pelicanmg"
)

// TimeConfig carries the clock situation for one search, all in
// milliseconds, straight from the UCI go command.
type TimeConfig struct {
	WhiteTime int
	BlackTime int
	WhiteInc  int
	BlackInc  int
	MoveTime  int
	Depth     int
	Infinite  bool
}

// Engine-side safety knobs for the allocation.
const (
	overheadMillis  = 30   // reserve for protocol/IO jitter
	minMoveMillis   = 5    // never less than this
	maxRemainFrac   = 0.7  // never spend more of the remaining clock
	panicThreshold  = 1000 // low-clock panic threshold, ms
	panicIncrementF = 0.9  // fraction of the increment used in panic
)

// TimeManager owns the search clock: the soft limit iterative
// deepening respects between iterations, the hard limit the node loop
// polls, and the per-root-move node accounting behind the early-stop
// heuristic. Stop requests arrive asynchronously via an atomic flag.
type TimeManager struct {
	cfg       TimeConfig
	startTime time.Time
	soft      time.Duration // 0 = no limit
	hard      time.Duration
	stopped   atomic.Bool
	nodes     uint64
	nodeSpent [64 * 64]uint64
}

// Start begins timing a search, computing the allocation from the
// clock of the side to move.
func (tm *TimeManager) Start(cfg TimeConfig, side mg.Color, fullmove int) {
	tm.cfg = cfg
	tm.startTime = time.Now()
	tm.stopped.Store(false)
	tm.nodes = 0
	for i := range tm.nodeSpent {
		tm.nodeSpent[i] = 0
	}
	tm.soft, tm.hard = 0, 0

	if cfg.Infinite || (cfg.MoveTime == 0 && cfg.WhiteTime == 0 && cfg.BlackTime == 0) {
		// Depth-limited or infinite search: no clock.
		return
	}

	if cfg.MoveTime > 0 {
		budget := max(cfg.MoveTime-overheadMillis, minMoveMillis)
		tm.soft = time.Duration(budget) * time.Millisecond
		tm.hard = tm.soft
		return
	}

	remaining, increment := cfg.WhiteTime, cfg.WhiteInc
	if side == mg.Black {
		remaining, increment = cfg.BlackTime, cfg.BlackInc
	}

	movesLeft := clamp(45-fullmove/2, 20, 45)
	var budget int
	switch {
	case increment > 0 && remaining < panicThreshold:
		// Try to bank a little time off the increment.
		budget = int(float64(increment) * panicIncrementF)
	case increment > 0:
		budget = remaining/movesLeft + increment
	default:
		budget = remaining / 40
	}

	budget = min(budget, int(float64(remaining)*maxRemainFrac))
	budget = min(budget, remaining-overheadMillis)
	budget = max(budget, minMoveMillis)

	tm.soft = time.Duration(budget) * time.Millisecond
	tm.hard = time.Duration(min(4*budget, int(float64(remaining)*maxRemainFrac))) * time.Millisecond
	tm.hard = max(tm.hard, tm.soft)
}

// Stop requests a cooperative stop; the search notices at its next poll.
func (tm *TimeManager) Stop() { tm.stopped.Store(true) }

// TimesUp reports whether the search must unwind now: either a stop
// request arrived or the hard limit passed.
func (tm *TimeManager) TimesUp() bool {
	if tm.stopped.Load() {
		return true
	}
	return tm.hard > 0 && time.Since(tm.startTime) >= tm.hard
}

// RootTimesUp decides between iterations whether another one is worth
// starting. Beyond the plain soft limit, a best move that has absorbed
// more than half the effort so far is unlikely to be overtaken, so the
// allocation is cut in half.
func (tm *TimeManager) RootTimesUp(best mg.Move) bool {
	if tm.stopped.Load() {
		return true
	}
	if tm.soft == 0 {
		return false
	}
	elapsed := time.Since(tm.startTime)
	if elapsed >= tm.soft {
		return true
	}
	if best != mg.NullMove && tm.nodes > 0 {
		if tm.nodeSpent[nodeSpentIndex(best)]*2 > tm.nodes && elapsed*2 >= tm.soft {
			return true
		}
	}
	return false
}

// UpdateNodesSearched counts one searched node.
func (tm *TimeManager) UpdateNodesSearched() { tm.nodes++ }

// UpdateNodeSpentTable credits nodes spent below a root move.
func (tm *TimeManager) UpdateNodeSpentTable(m mg.Move, nodes uint64) {
	tm.nodeSpent[nodeSpentIndex(m)] += nodes
}

// NodesSearched returns the node count of the current search.
func (tm *TimeManager) NodesSearched() uint64 { return tm.nodes }

// Elapsed returns the time since Start.
func (tm *TimeManager) Elapsed() time.Duration { return time.Since(tm.startTime) }

func nodeSpentIndex(m mg.Move) int { return int(m.From())<<6 | int(m.To()) }
