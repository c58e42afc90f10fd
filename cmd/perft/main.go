// Perft driver: counts leaf nodes for a position, optionally fanning
// the root moves out over goroutines and cross-checking the total
// against the dragontoothmg generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/sync/errgroup"

	mg "pelican/pelicanmg"
)

func main() {
	fen := flag.String("fen", mg.Startpos, "position to count from")
	depth := flag.Int("depth", 5, "perft depth")
	divide := flag.Bool("divide", false, "print per-root-move counts")
	parallel := flag.Bool("parallel", false, "fan root moves out over goroutines")
	check := flag.Bool("check", false, "cross-check the total against dragontoothmg")
	flag.Parse()

	board, err := mg.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start := time.Now()
	var nodes uint64
	switch {
	case *divide:
		counts := mg.PerftDivide(board, *depth)
		moves := make([]mg.Move, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			nodes += counts[m]
		}
	case *parallel:
		nodes, err = parallelPerft(board, *depth)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		nodes = mg.Perft(board, *depth)
	}

	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("perft(%d) = %d in %v (%.0f nps)\n", *depth, nodes, elapsed, nps)

	if *check {
		ref := dragontoothmg.ParseFen(*fen)
		refNodes := referencePerft(&ref, *depth)
		if refNodes != nodes {
			fmt.Printf("MISMATCH: dragontoothmg says %d\n", refNodes)
			os.Exit(1)
		}
		fmt.Println("dragontoothmg agrees")
	}
}

// referencePerft walks dragontoothmg's legal move generator.
func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		undo()
	}
	return nodes
}

// parallelPerft splits the count at the root, one goroutine per legal
// move on its own board clone.
func parallelPerft(board *mg.Board, depth int) (uint64, error) {
	if depth <= 1 {
		return mg.Perft(board, depth), nil
	}

	us := board.SideToMove()
	var buf [256]mg.Move
	var roots []mg.Move
	for _, m := range board.GenerateMoves(mg.GenAll, buf[:0]) {
		board.MakeMove(m)
		if !board.InCheck(us) {
			roots = append(roots, m)
		}
		board.UnmakeMove()
	}

	var total atomic.Uint64
	var g errgroup.Group
	for _, m := range roots {
		m := m
		child := board.Clone()
		g.Go(func() error {
			child.MakeMove(m)
			total.Add(mg.Perft(child, depth-1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
