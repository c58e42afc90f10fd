package engine

import (
	"testing"
	"time"

	mg "pelican/pelicanmg"
)

func TestMoveTimeSetsBothLimits(t *testing.T) {
	var tm TimeManager
	tm.Start(TimeConfig{MoveTime: 500}, mg.White, 1)
	if tm.soft != tm.hard {
		t.Fatalf("movetime should pin soft and hard limits together")
	}
	if tm.soft <= 0 || tm.soft > 500*time.Millisecond {
		t.Fatalf("movetime allocation out of range: %v", tm.soft)
	}
	if tm.TimesUp() {
		t.Fatalf("fresh clock already up")
	}
}

func TestInfiniteSearchNeverTimesUp(t *testing.T) {
	var tm TimeManager
	tm.Start(TimeConfig{Infinite: true}, mg.White, 1)
	if tm.TimesUp() || tm.RootTimesUp(mg.NullMove) {
		t.Fatalf("infinite search reported a time limit")
	}
	tm.Stop()
	if !tm.TimesUp() || !tm.RootTimesUp(mg.NullMove) {
		t.Fatalf("stop flag ignored")
	}
}

func TestAllocationRespectsRemainingClock(t *testing.T) {
	var tm TimeManager
	tm.Start(TimeConfig{WhiteTime: 1000, WhiteInc: 0}, mg.White, 10)
	if tm.soft > 700*time.Millisecond {
		t.Fatalf("allocation %v exceeds the remaining-clock fraction", tm.soft)
	}
	if tm.hard < tm.soft {
		t.Fatalf("hard limit below the soft limit")
	}
}

func TestRootTimesUpOnDominantMove(t *testing.T) {
	var tm TimeManager
	tm.Start(TimeConfig{WhiteTime: 10, WhiteInc: 0}, mg.White, 1)
	// Tiny budget: once elapsed crosses half the allocation and one
	// move absorbed most of the nodes, the iteration loop should stop.
	best := mg.NewMove(12, 28, mg.NoPieceType, mg.MoveDoublePush)
	for i := 0; i < 100; i++ {
		tm.UpdateNodesSearched()
	}
	tm.UpdateNodeSpentTable(best, 90)
	time.Sleep(tm.soft/2 + time.Millisecond)
	if !tm.RootTimesUp(best) {
		t.Fatalf("dominant move did not trigger the early stop")
	}
}

func TestNodeAccounting(t *testing.T) {
	var tm TimeManager
	tm.Start(TimeConfig{Depth: 5}, mg.White, 1)
	for i := 0; i < 7; i++ {
		tm.UpdateNodesSearched()
	}
	if tm.NodesSearched() != 7 {
		t.Fatalf("nodes: got %d want 7", tm.NodesSearched())
	}
}
