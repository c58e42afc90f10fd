package engine

import (
	"fmt"
	"io"
	"math"
	"os"

	mg "pelican/pelicanmg"
)

const aspirationWindow int32 = 75

// Reverse futility margin per remaining depth.
func futilityMargin(depth int8) int32 { return 100 + 120*int32(depth) }

// lmrTable[depth][movesTried] holds the late-move reduction.
var lmrTable [MaxSearchDepth + 1][64]int8

func init() {
	for depth := 2; depth <= MaxSearchDepth; depth++ {
		for moves := 2; moves < 64; moves++ {
			lmrTable[depth][moves] = int8(math.Floor(
				0.77 + math.Log(float64(depth)) + math.Log(float64(moves))/2.36))
		}
	}
}

// SearchResult is what a completed search hands back to the front-end.
type SearchResult struct {
	BestMove mg.Move
	Ponder   mg.Move
	Score    int32
	Depth    int
	PV       PVLine
}

// Searcher is the context that owns the board exclusively and shares
// the transposition table, history tables and time manager. All
// dependencies flow downward from here; none of the parts refer back.
type Searcher struct {
	board   *mg.Board
	tt      *TransTable
	hist    HistoryTables
	timeman TimeManager

	// Out receives the info lines; stdout for the UCI front-end.
	Out io.Writer

	aborted     bool
	nullAllowed bool
	rootBest    mg.Move
}

// NewSearcher builds a searcher on the starting position with a
// transposition table of the given size.
func NewSearcher(ttSizeMB int) *Searcher {
	board, err := mg.ParseFEN(mg.Startpos)
	if err != nil {
		panic(err)
	}
	s := &Searcher{
		board: board,
		tt:    NewTransTable(ttSizeMB),
		Out:   os.Stdout,
	}
	s.hist.Clear()
	return s
}

// Board exposes the searcher's position.
func (s *Searcher) Board() *mg.Board { return s.board }

// Nodes returns the node count of the most recent search.
func (s *Searcher) Nodes() uint64 { return s.timeman.NodesSearched() }

// NewGame resets the transposition table and all heuristic tables.
func (s *Searcher) NewGame() {
	s.tt.Clear()
	s.hist.Clear()
}

// SetPosition loads a FEN and applies the given UCI moves on top of it.
// Illegal moves are rejected before they touch the board.
func (s *Searcher) SetPosition(fen string, moves []string) error {
	board, err := mg.ParseFEN(fen)
	if err != nil {
		return err
	}
	for _, uci := range moves {
		m, err := board.ParseMove(uci)
		if err != nil {
			return err
		}
		if !board.IsPseudoLegal(m) {
			return fmt.Errorf("illegal move %q", uci)
		}
		us := board.SideToMove()
		board.MakeMove(m)
		if board.InCheck(us) {
			board.UnmakeMove()
			return fmt.Errorf("illegal move %q", uci)
		}
	}
	s.board = board
	return nil
}

// Stop requests a cooperative stop of a running search.
func (s *Searcher) Stop() { s.timeman.Stop() }

// Go runs iterative deepening under the given time configuration and
// returns the result of the last completed iteration. A partial
// iteration interrupted by the clock is discarded.
func (s *Searcher) Go(cfg TimeConfig) SearchResult {
	s.hist.ClearKillers()
	s.timeman.Start(cfg, s.board.SideToMove(), s.board.FullmoveNumber())
	s.aborted = false
	s.nullAllowed = true
	s.rootBest = mg.NullMove

	maxDepth := MaxSearchDepth
	if cfg.Depth > 0 {
		maxDepth = min(cfg.Depth, MaxSearchDepth)
	}

	var result SearchResult
	var pv PVLine
	var prevScore int32

	for depth := 1; depth <= maxDepth; depth++ {
		pv.Clear()

		alpha, beta := -Infinity, Infinity
		if depth >= 4 {
			alpha = prevScore - aspirationWindow
			beta = prevScore + aspirationWindow
		}

		score := s.searchRoot(int8(depth), alpha, beta, &pv)
		if !s.aborted && (score <= alpha || score >= beta) {
			// Aspiration miss: redo the iteration with the full window.
			pv.Clear()
			score = s.searchRoot(int8(depth), -Infinity, Infinity, &pv)
		}
		if s.aborted {
			break
		}

		prevScore = score
		result.Score = score
		result.Depth = depth
		result.PV = pv.Clone()
		result.BestMove = result.PV.BestMove()
		result.Ponder = mg.NullMove
		if len(result.PV.Moves) > 1 {
			result.Ponder = result.PV.Moves[1]
		}

		s.printInfo(depth, score, &result.PV)

		if s.timeman.RootTimesUp(result.BestMove) {
			break
		}
	}

	if result.BestMove == mg.NullMove {
		// The clock cut the very first iteration short; fall back to
		// the best root move seen so far.
		result.BestMove = s.rootBest
	}
	return result
}

func (s *Searcher) printInfo(depth int, score int32, pv *PVLine) {
	nodes := s.timeman.NodesSearched()
	millis := s.timeman.Elapsed().Milliseconds()
	nps := nodes * 1000 / uint64(max(millis, 1))
	fmt.Fprintf(s.Out, "info depth %d score %s nodes %d nps %d time %d seldepth %d pv %s\n",
		depth, ScoreString(score), nodes, nps, millis, len(pv.Moves), pv.String())
}

// checkTime polls the clock every 1024 nodes. The search only unwinds
// once some root move is on hand, so even a hopeless clock always
// yields a playable move.
func (s *Searcher) checkTime() {
	s.timeman.UpdateNodesSearched()
	if s.timeman.NodesSearched()&1023 == 0 && s.rootBest != mg.NullMove && s.timeman.TimesUp() {
		s.aborted = true
	}
}

// searchRoot is the ply-0 search. It is structurally the inner search
// but is always a PV node, never prunes or reduces the move list,
// records per-move node counts for the time manager, and keeps the
// best move surfaced even when the clock cuts the iteration.
func (s *Searcher) searchRoot(depth int8, alpha, beta int32, pv *PVLine) int32 {
	b := s.board
	us := b.SideToMove()
	originalAlpha := alpha

	var ttMove mg.Move
	if entry, hit := s.tt.Probe(b.Hash()); hit {
		ttMove = entry.Move
	}

	picker := NewMovePicker(b, ttMove, &s.hist, 0, b.LastMove())
	var childPV PVLine
	bestScore := -Infinity
	bestMove := mg.NullMove
	legal := 0
	var quietsTried []mg.Move

	for m := picker.Next(); m != mg.NullMove; m = picker.Next() {
		isCapture := b.IsCapture(m)
		b.MakeMove(m)
		if b.InCheck(us) {
			b.UnmakeMove()
			continue
		}
		legal++

		nodesBefore := s.timeman.NodesSearched()
		childPV.Clear()
		var score int32
		if legal == 1 {
			score = -s.search(depth-1, 1, -beta, -alpha, &childPV)
		} else {
			score = -s.search(depth-1, 1, -alpha-1, -alpha, &childPV)
			if score > alpha {
				score = -s.search(depth-1, 1, -beta, -alpha, &childPV)
			}
		}
		b.UnmakeMove()
		s.timeman.UpdateNodeSpentTable(m, s.timeman.NodesSearched()-nodesBefore)

		if s.aborted {
			return 0
		}
		if !isCapture {
			quietsTried = append(quietsTried, m)
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
			s.rootBest = m
		}
		if score > alpha {
			alpha = score
			pv.Update(m, childPV)
		}
		if alpha >= beta {
			if !isCapture && m.Promotion() == mg.NoPieceType {
				s.hist.UpdateQuietCutoff(us, 0, m, b.LastMove(), depth, quietsTried)
			}
			break
		}
	}

	if legal == 0 {
		if b.InCheck(us) {
			return -MateScore
		}
		return DrawScore
	}

	flag := ExactBound
	if bestScore >= beta {
		flag = LowerBound
	} else if bestScore <= originalAlpha {
		flag = UpperBound
	}
	s.tt.Store(b.Hash(), depth, 0, bestMove, bestScore, flag)
	return bestScore
}

// search is the principal-variation search, negamax convention: the
// score is from the side to move's perspective.
func (s *Searcher) search(depth int8, ply int, alpha, beta int32, pv *PVLine) int32 {
	s.checkTime()
	if s.aborted {
		return 0
	}

	b := s.board
	if b.IsDraw() {
		return DrawScore
	}
	if ply >= MaxPly {
		if !b.HasLegalMoves() {
			if b.InCheck(b.SideToMove()) {
				return -MateScore + int32(ply)
			}
			return DrawScore
		}
		return Evaluate(b)
	}

	isPV := beta-alpha > 1
	us := b.SideToMove()
	originalAlpha := alpha

	// Transposition probe. PV nodes keep searching for an exact line.
	var ttMove mg.Move
	entry, hit := s.tt.Probe(b.Hash())
	if hit {
		ttMove = entry.Move
		if !isPV && entry.Depth >= depth {
			score := s.tt.ScoreFrom(entry.Score, ply)
			switch entry.Flag {
			case ExactBound:
				return score
			case LowerBound:
				if score >= beta {
					return score
				}
			case UpperBound:
				if score <= alpha {
					return score
				}
			}
		}
	}

	inCheck := b.InCheck(us)
	if inCheck {
		depth++
	}

	if depth <= 0 {
		return s.quiesce(ply, alpha, beta, pv)
	}

	// Reverse futility: a static eval still over beta after a generous
	// margin is not coming back down in the few plies left.
	if !isPV && !inCheck && depth <= 6 && !IsMateScore(beta) {
		staticEval := Evaluate(b)
		if staticEval-futilityMargin(depth) >= beta && b.HasLegalMoves() {
			return staticEval
		}
	}

	// Null move: hand the opponent a free tempo; if the position still
	// fails high, the real move will too. Skipped without non-pawn
	// material (zugzwang), in check, at PV nodes, and while another
	// null move is on the stack.
	if s.nullAllowed && depth > 2 && !inCheck && !isPV && b.HasNonPawnMaterial(us) {
		s.nullAllowed = false
		b.MakeNullMove()
		var dummy PVLine
		reduction := depth/4 + 3
		score := -s.search(depth-reduction, ply+1, -beta, -beta+1, &dummy)
		b.UnmakeNullMove()
		s.nullAllowed = true
		if s.aborted {
			return 0
		}
		if score >= beta {
			if IsMateScore(score) {
				return beta
			}
			return score
		}
	}

	picker := NewMovePicker(b, ttMove, &s.hist, ply, b.LastMove())
	var childPV PVLine
	bestScore := -Infinity
	bestMove := mg.NullMove
	legal := 0
	var quietsTried []mg.Move

	for m := picker.Next(); m != mg.NullMove; m = picker.Next() {
		isCapture := b.IsCapture(m)
		isPromo := m.Promotion() != mg.NoPieceType

		b.MakeMove(m)
		if b.InCheck(us) {
			b.UnmakeMove()
			continue
		}
		legal++
		givesCheck := b.InCheck(us.Flip())

		var reduction int8
		if depth >= 2 && legal > 1 && !isCapture && !isPromo && !givesCheck {
			reduction = lmrTable[depth][min(legal, 63)]
			reduction = clamp(reduction, 0, depth-1)
		}

		childPV.Clear()
		var score int32
		if legal == 1 {
			score = -s.search(depth-1-reduction, ply+1, -beta, -alpha, &childPV)
		} else {
			score = -s.search(depth-1-reduction, ply+1, -alpha-1, -alpha, &childPV)
			if score > alpha && (isPV || reduction > 0) {
				score = -s.search(depth-1, ply+1, -beta, -alpha, &childPV)
			}
		}
		b.UnmakeMove()

		if s.aborted {
			return 0
		}
		if !isCapture {
			quietsTried = append(quietsTried, m)
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			pv.Update(m, childPV)
		}
		if alpha >= beta {
			if !isCapture && !isPromo {
				s.hist.UpdateQuietCutoff(us, ply, m, b.LastMove(), depth, quietsTried)
			}
			break
		}
	}

	if legal == 0 {
		if inCheck {
			return -MateScore + int32(ply)
		}
		return DrawScore
	}

	flag := ExactBound
	if bestScore >= beta {
		flag = LowerBound
	} else if bestScore <= originalAlpha {
		flag = UpperBound
	}
	s.tt.Store(b.Hash(), depth, ply, bestMove, bestScore, flag)
	return bestScore
}

// quiesce searches only forcing moves at the horizon so the evaluation
// settles on a quiet position. Fail-soft: the returned score may fall
// outside the original window.
func (s *Searcher) quiesce(ply int, alpha, beta int32, pv *PVLine) int32 {
	s.checkTime()
	if s.aborted {
		return 0
	}

	b := s.board
	if b.IsDraw() {
		return DrawScore
	}

	us := b.SideToMove()
	if !b.HasLegalMoves() {
		if b.InCheck(us) {
			return -MateScore + int32(ply)
		}
		return DrawScore
	}
	if ply >= MaxPly {
		return Evaluate(b)
	}

	standPat := Evaluate(b)
	if standPat >= beta {
		return standPat
	}
	// Delta pruning: even capturing a whole queen cannot rescue alpha.
	if standPat+PieceValues[mg.Queen] < alpha {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ttMove mg.Move
	if entry, hit := s.tt.Probe(b.Hash()); hit {
		ttMove = entry.Move
	}

	picker := NewQuiescencePicker(b, ttMove, &s.hist, ply, b.LastMove())
	var childPV PVLine
	bestScore := standPat

	for m := picker.Next(); m != mg.NullMove; m = picker.Next() {
		b.MakeMove(m)
		if b.InCheck(us) {
			b.UnmakeMove()
			continue
		}
		childPV.Clear()
		score := -s.quiesce(ply+1, -beta, -alpha, &childPV)
		b.UnmakeMove()

		if s.aborted {
			return 0
		}
		if score > bestScore {
			bestScore = score
		}
		if score >= beta {
			return bestScore
		}
		if score > alpha {
			alpha = score
			pv.Update(m, childPV)
		}
	}
	return bestScore
}
