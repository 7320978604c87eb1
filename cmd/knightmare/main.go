// Command knightmare plays a game of chess on the terminal against the
// built-in engine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Anoncoder666/Knightmare/internal/board"
	"github.com/Anoncoder666/Knightmare/internal/engine"
	"github.com/Anoncoder666/Knightmare/internal/eval"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "starting position in FEN")
	depth := flag.Int("depth", 3, "engine search depth")
	engineColor := flag.String("engine-color", "black", "side the engine plays: white or black")
	weights := flag.String("weights", "", "path to model weights file (empty for material evaluation)")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN: %v", err)
	}

	var side board.Color
	switch strings.ToLower(*engineColor) {
	case "white", "w":
		side = board.White
	case "black", "b":
		side = board.Black
	default:
		log.Fatalf("invalid engine color %q: want white or black", *engineColor)
	}

	evaluator, err := loadEvaluator(*weights)
	if err != nil {
		log.Fatalf("failed to load weights: %v", err)
	}
	searcher := engine.NewSearcher(evaluator)

	play(pos, searcher, side, *depth)
}

// loadEvaluator returns the model evaluator when a weights file is given and
// the material evaluator otherwise.
func loadEvaluator(path string) (engine.Evaluator, error) {
	if path == "" {
		return eval.Material{}, nil
	}
	model, err := eval.LoadModel(path)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// play runs the game loop until mate, stalemate, or a rule draw.
func play(pos *board.Position, searcher *engine.Searcher, engineSide board.Color, depth int) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println(pos)

		if over := announceGameOver(pos); over {
			return
		}

		var move board.Move
		if pos.SideToMove == engineSide {
			best, score, found := searcher.Search(pos, depth)
			if !found {
				return
			}
			fmt.Printf("engine plays %s (score %.3f)\n", best, score)
			move = best
		} else {
			move = readMove(reader, pos)
		}

		pos.Apply(move)
	}
}

// announceGameOver prints the result line if the game is finished.
func announceGameOver(pos *board.Position) bool {
	switch {
	case pos.IsCheckmate():
		fmt.Printf("checkmate, %s wins\n", pos.SideToMove.Other())
		return true
	case pos.IsStalemate():
		fmt.Println("stalemate")
		return true
	case pos.IsDrawByRule():
		fmt.Println("draw")
		return true
	}
	return false
}

// readMove prompts until the user enters a legal move. Malformed input and
// legal-looking but unavailable moves both re-prompt.
func readMove(reader *bufio.Reader, pos *board.Position) board.Move {
	legal := pos.LegalMoves()
	for {
		fmt.Printf("%s to move> ", pos.SideToMove)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			os.Exit(0)
		}
		line = strings.TrimSpace(line)
		if line == "quit" || line == "exit" {
			os.Exit(0)
		}
		if line == "moves" {
			for _, m := range legal {
				fmt.Printf("%s ", m)
			}
			fmt.Println()
			continue
		}

		move, ok, err := board.FindMove(line, legal)
		if err != nil {
			fmt.Printf("bad move text: %v\n", err)
			continue
		}
		if !ok {
			fmt.Printf("%s is not a legal move here\n", line)
			continue
		}
		return move
	}
}
