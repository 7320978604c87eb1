// Package eval provides position evaluators for the search: a hand-written
// material formula and a trained network loaded from a weights file. Both
// return a scalar in [-1, 1] oriented positive-is-good-for-side-to-move.
package eval

import (
	"math"

	"github.com/Anoncoder666/Knightmare/internal/board"
)

// maxMaterial normalizes the raw centipawn balance into [-1, 1].
const maxMaterial = 4000.0

// Material is a material-only evaluator.
type Material struct{}

// Evaluate sums piece values, normalizes, and orients the result to the side
// to move.
func (Material) Evaluate(pos *board.Position) float64 {
	score := 0
	for _, piece := range pos.Board {
		if piece == board.NoPiece {
			continue
		}
		if piece.Color() == board.White {
			score += piece.Value()
		} else {
			score -= piece.Value()
		}
	}

	oriented := float64(score) / maxMaterial
	if pos.SideToMove == board.Black {
		oriented = -oriented
	}
	return math.Max(-1, math.Min(1, oriented))
}
