// Package selfplay generates labeled training positions by playing the
// engine against itself at a fixed depth.
package selfplay

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Anoncoder666/Knightmare/internal/board"
	"github.com/Anoncoder666/Knightmare/internal/engine"
	"github.com/Anoncoder666/Knightmare/internal/storage"
)

// Config controls a self-play run.
type Config struct {
	Games    int // number of games to play
	MaxMoves int // ply cap per game
	Depth    int // search depth per move
}

// Runner plays games and writes the labeled positions to a store.
type Runner struct {
	store    *storage.Store
	searcher *engine.Searcher
}

// New creates a runner writing to the given store and searching with the
// given evaluator.
func New(store *storage.Store, eval engine.Evaluator) *Runner {
	return &Runner{store: store, searcher: engine.NewSearcher(eval)}
}

// Run plays cfg.Games games and stores one sample per visited position,
// labeled with the final result oriented to that position's side to move.
// It returns the total number of samples written.
func (r *Runner) Run(cfg Config) (int, error) {
	total := 0
	for i := 0; i < cfg.Games; i++ {
		fens, result := r.playGame(cfg)

		gameID := uuid.NewString()
		samples := make([]*storage.Sample, 0, len(fens))
		for _, fen := range fens {
			label := result
			if strings.Fields(fen)[1] == "b" {
				label = -result
			}
			samples = append(samples, &storage.Sample{
				GameID: gameID,
				FEN:    fen,
				Value:  label,
			})
		}
		if err := r.store.PutSamples(samples); err != nil {
			return total, err
		}
		total += len(samples)
	}
	return total, nil
}

// playGame plays one game from the start position, recording the FEN before
// each move, and returns the result from white's perspective: +1 white win,
// -1 black win, 0 otherwise.
func (r *Runner) playGame(cfg Config) ([]string, float64) {
	pos := board.StartingPosition()
	var fens []string

	for ply := 0; ply < cfg.MaxMoves; ply++ {
		if len(pos.LegalMoves()) == 0 || pos.IsDrawByRule() {
			break
		}
		move, _, ok := r.searcher.Search(pos, cfg.Depth)
		if !ok {
			break
		}
		fens = append(fens, pos.FEN())
		pos.Apply(move)
	}

	return fens, gameResult(pos)
}

// gameResult scores the final position: a side with no legal moves while in
// check has been mated; everything else counts as a draw.
func gameResult(pos *board.Position) float64 {
	if len(pos.LegalMoves()) > 0 {
		return 0
	}
	if pos.InCheck(pos.SideToMove) {
		if pos.SideToMove == board.White {
			return -1
		}
		return 1
	}
	return 0
}
