package engine

import (
	"io"
	"testing"
	"time"

	mg "pelican/pelicanmg"
)

func testSearcher(t *testing.T, fen string, moves ...string) *Searcher {
	t.Helper()
	s := NewSearcher(16)
	s.Out = io.Discard
	if err := s.SetPosition(fen, moves); err != nil {
		t.Fatalf("set position: %v", err)
	}
	return s
}

func isLegal(b *mg.Board, m mg.Move) bool {
	if !b.IsPseudoLegal(m) {
		return false
	}
	us := b.SideToMove()
	b.MakeMove(m)
	ok := !b.InCheck(us)
	b.UnmakeMove()
	return ok
}

func TestMateInOne(t *testing.T) {
	s := testSearcher(t, "6k1/5ppp/8/8/8/8/6PP/R5K1 w - - 0 1")
	result := s.Go(TimeConfig{Depth: 2})

	if result.BestMove.String() != "a1a8" {
		t.Fatalf("best move %s, want a1a8", result.BestMove)
	}
	if !IsMateScore(result.Score) || MateIn(result.Score) != 1 {
		t.Fatalf("score %d, want mate in 1", result.Score)
	}
}

func TestMateScoreFromDeeperSearch(t *testing.T) {
	// The mate distance must not change when the search goes deeper
	// than the mate.
	s := testSearcher(t, "6k1/5ppp/8/8/8/8/6PP/R5K1 w - - 0 1")
	result := s.Go(TimeConfig{Depth: 5})
	if !IsMateScore(result.Score) || MateIn(result.Score) != 1 {
		t.Fatalf("score %d, want mate in 1", result.Score)
	}
}

func TestQuiesceReturnsDrawOnStalemate(t *testing.T) {
	s := testSearcher(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	var pv PVLine
	if got := s.quiesce(0, -Infinity, Infinity, &pv); got != DrawScore {
		t.Fatalf("stalemate quiesce: got %d want %d", got, DrawScore)
	}
}

func TestQuiesceReturnsMateWhenCheckmated(t *testing.T) {
	// Back-rank mate already delivered; black to move.
	s := testSearcher(t, "R5k1/5ppp/8/8/8/8/6PP/6K1 b - - 0 1")
	var pv PVLine
	got := s.quiesce(0, -Infinity, Infinity, &pv)
	if got != -MateScore {
		t.Fatalf("checkmated quiesce: got %d want %d", got, -MateScore)
	}
}

func TestRepetitionLineScoresDraw(t *testing.T) {
	// After the shuffle the position has already occurred; retreating
	// the knight repeats again and the searched child is a draw.
	s := testSearcher(t, mg.Startpos,
		"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6")
	b := s.Board()
	m, err := b.ParseMove("f3g1")
	if err != nil {
		t.Fatal(err)
	}
	b.MakeMove(m)
	if !b.IsDraw() {
		t.Fatalf("repeating line not recognized as a draw")
	}
	var pv PVLine
	if got := s.search(3, 1, -Infinity, Infinity, &pv); got != DrawScore {
		t.Fatalf("repeated position searched to %d, want draw score", got)
	}
	b.UnmakeMove()
}

func TestZugzwangGuardSuppressesNullMove(t *testing.T) {
	s := testSearcher(t, "8/8/8/3k4/8/8/3KP3/8 w - - 0 1")
	if s.Board().HasNonPawnMaterial(mg.White) {
		t.Fatalf("pawn-only side reported to have pieces")
	}
	// The search must still produce a sane, legal move without a
	// null-move fail-high short-circuiting the pawn endgame.
	result := s.Go(TimeConfig{Depth: 6})
	if result.BestMove == mg.NullMove || !isLegal(s.Board(), result.BestMove) {
		t.Fatalf("no legal best move in zugzwang position: %s", result.BestMove)
	}
}

func TestPawnEndgameKeepsPawn(t *testing.T) {
	s := testSearcher(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	result := s.Go(TimeConfig{Depth: 6})

	if result.Score < 0 {
		t.Fatalf("side with the extra pawn scores %d", result.Score)
	}
	keeping := map[string]bool{
		"e2e3": true, "e2e4": true, // pushing
		"e1d2": true, "e1e2": true, "e1f2": true, // escorting
		"e1d1": true, "e1f1": true,
	}
	if !keeping[result.BestMove.String()] {
		t.Fatalf("best move %s walks away from the pawn", result.BestMove)
	}
}

func TestBestMoveAndPVAreLegal(t *testing.T) {
	fens := []string{
		mg.Startpos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
	}
	for _, fen := range fens {
		s := testSearcher(t, fen)
		result := s.Go(TimeConfig{Depth: 5})

		b := s.Board()
		if !isLegal(b, result.BestMove) {
			t.Fatalf("%s: best move %s is not legal", fen, result.BestMove)
		}
		made := 0
		for _, m := range result.PV.Moves {
			if !isLegal(b, m) {
				t.Fatalf("%s: pv move %s illegal in its position", fen, m)
			}
			b.MakeMove(m)
			made++
		}
		for ; made > 0; made-- {
			b.UnmakeMove()
		}
	}
}

func TestRookEndgameFindsActivity(t *testing.T) {
	s := testSearcher(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	result := s.Go(TimeConfig{Depth: 8})
	if result.Score <= 0 {
		t.Fatalf("rook-up side scores %d", result.Score)
	}
	if len(result.PV.Moves) < 4 {
		t.Fatalf("pv length %d, want at least 4", len(result.PV.Moves))
	}
}

func TestStopFlagAbortsInfiniteSearch(t *testing.T) {
	s := testSearcher(t, mg.Startpos)

	done := make(chan SearchResult, 1)
	go func() {
		done <- s.Go(TimeConfig{Infinite: true})
	}()

	time.Sleep(50 * time.Millisecond)
	s.Stop()

	select {
	case result := <-done:
		if result.BestMove == mg.NullMove || !isLegal(s.Board(), result.BestMove) {
			t.Fatalf("stopped search returned no usable move")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("search did not honor the stop flag")
	}
}

func TestIterativeDeepeningKeepsCompletedResult(t *testing.T) {
	s := testSearcher(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	result := s.Go(TimeConfig{Depth: 4})
	if result.Depth != 4 {
		t.Fatalf("completed depth %d, want 4", result.Depth)
	}
	if result.BestMove != result.PV.BestMove() {
		t.Fatalf("best move %s disagrees with pv head %s", result.BestMove, result.PV.BestMove())
	}
}
