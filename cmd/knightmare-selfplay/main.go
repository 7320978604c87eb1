// Command knightmare-selfplay plays engine-vs-engine games and stores the
// labeled positions for training.
package main

import (
	"flag"
	"log"

	"github.com/Anoncoder666/Knightmare/internal/engine"
	"github.com/Anoncoder666/Knightmare/internal/eval"
	"github.com/Anoncoder666/Knightmare/internal/selfplay"
	"github.com/Anoncoder666/Knightmare/internal/storage"
)

func main() {
	games := flag.Int("games", 10, "number of games to play")
	maxMoves := flag.Int("max-moves", 200, "maximum plies per game")
	depth := flag.Int("depth", 2, "search depth per move")
	dbDir := flag.String("db", "", "sample database directory (empty for the platform default)")
	weights := flag.String("weights", "", "path to model weights file (empty for material evaluation)")
	flag.Parse()

	store, err := openStore(*dbDir)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	var evaluator engine.Evaluator = eval.Material{}
	if *weights != "" {
		model, err := eval.LoadModel(*weights)
		if err != nil {
			log.Fatalf("failed to load weights: %v", err)
		}
		evaluator = model
	}

	runner := selfplay.New(store, evaluator)
	written, err := runner.Run(selfplay.Config{
		Games:    *games,
		MaxMoves: *maxMoves,
		Depth:    *depth,
	})
	if err != nil {
		log.Fatalf("self-play failed after %d samples: %v", written, err)
	}

	log.Printf("played %d games, stored %d samples", *games, written)
}

func openStore(dir string) (*storage.Store, error) {
	if dir == "" {
		return storage.OpenDefault()
	}
	return storage.Open(dir)
}
