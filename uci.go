package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pelican/engine"
	mg "pelican/pelicanmg"
)

const (
	engineName   = "Pelican 0.1"
	engineAuthor = "Pelican"
	ttSizeMB     = 64
)

func main() {
	uciLoop()
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	searcher := engine.NewSearcher(ttSizeMB)
	searching := make(chan struct{}, 1)

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name " + engineName)
			fmt.Println("id author " + engineAuthor)
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			searcher.NewGame()
			if err := searcher.SetPosition(mg.Startpos, nil); err != nil {
				fmt.Println("info string", err)
			}
		case "position":
			fen, moves, err := parsePosition(tokens[1:])
			if err == nil {
				err = searcher.SetPosition(fen, moves)
			}
			if err != nil {
				fmt.Println("info string", err)
			}
		case "go":
			cfg := parseGo(tokens[1:])
			select {
			case searching <- struct{}{}:
			default:
				continue // a search is already running
			}
			go func() {
				result := searcher.Go(cfg)
				if result.Ponder != mg.NullMove {
					fmt.Printf("bestmove %s ponder %s\n", result.BestMove, result.Ponder)
				} else {
					fmt.Printf("bestmove %s\n", result.BestMove)
				}
				<-searching
			}()
		case "stop":
			searcher.Stop()
		case "quit":
			searcher.Stop()
			return
		}
	}
}

func parsePosition(tokens []string) (fen string, moves []string, err error) {
	if len(tokens) == 0 {
		return "", nil, fmt.Errorf("malformed position command")
	}
	rest := tokens[1:]
	switch tokens[0] {
	case "startpos":
		fen = mg.Startpos
	case "fen":
		var fields []string
		for len(rest) > 0 && rest[0] != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		if len(fields) == 0 {
			return "", nil, fmt.Errorf("position fen: missing fen string")
		}
		fen = strings.Join(fields, " ")
	default:
		return "", nil, fmt.Errorf("malformed position command %q", tokens[0])
	}
	if len(rest) > 0 && rest[0] == "moves" {
		moves = rest[1:]
	}
	return fen, moves, nil
}

func parseGo(tokens []string) engine.TimeConfig {
	var cfg engine.TimeConfig
	atoi := func(i int) int {
		if i >= len(tokens) {
			fmt.Println("info string malformed go option", tokens[i-1])
			return 0
		}
		v, err := strconv.Atoi(tokens[i])
		if err != nil {
			fmt.Println("info string malformed go option", tokens[i-1])
			return 0
		}
		return v
	}
	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "infinite":
			cfg.Infinite = true
		case "wtime":
			i++
			cfg.WhiteTime = atoi(i)
		case "btime":
			i++
			cfg.BlackTime = atoi(i)
		case "winc":
			i++
			cfg.WhiteInc = atoi(i)
		case "binc":
			i++
			cfg.BlackInc = atoi(i)
		case "movetime":
			i++
			cfg.MoveTime = atoi(i)
		case "depth":
			i++
			cfg.Depth = atoi(i)
		}
	}
	return cfg
}
