// Package engine implements a fixed-depth negamax alpha-beta search with a
// capture-only quiescence extension.
package engine

import (
	"math"

	"github.com/Anoncoder666/Knightmare/internal/board"
)

// Evaluator scores a position from the side to move's perspective.
// Implementations must be deterministic for a fixed position and bounded in
// [-1, 1]; positive is good for the side to move.
type Evaluator interface {
	Evaluate(pos *board.Position) float64
}

// Search constants
const (
	// MateValue dominates any evaluator output so forced mates outrank
	// material.
	MateValue = 10000.0

	// DefaultQuiescenceDepth bounds the capture-only extension at the
	// search horizon.
	DefaultQuiescenceDepth = 3
)

// Searcher performs the alpha-beta search. It is single-threaded and applies
// and undoes moves against the one Position it is handed, in strict LIFO
// discipline.
type Searcher struct {
	eval            Evaluator
	quiescenceDepth int
}

// NewSearcher creates a searcher around the given evaluator.
func NewSearcher(eval Evaluator) *Searcher {
	return &Searcher{eval: eval, quiescenceDepth: DefaultQuiescenceDepth}
}

// SetQuiescenceDepth overrides the capture-extension depth limit.
func (s *Searcher) SetQuiescenceDepth(depth int) {
	s.quiescenceDepth = depth
}

// Search picks the best move for the side to move at the given depth.
// It returns found=false with a zero score when the position has no legal
// moves (mate or stalemate); it never crashes on such positions.
func (s *Searcher) Search(pos *board.Position, depth int) (best board.Move, score float64, found bool) {
	moves := pos.LegalMoves()
	orderMoves(moves)
	if len(moves) == 0 {
		return board.Move{}, 0, false
	}

	alpha := math.Inf(-1)
	beta := math.Inf(1)
	for _, m := range moves {
		pos.Apply(m)
		value := -s.alphaBeta(pos, depth-1, -beta, -alpha)
		pos.Undo()
		if value > alpha {
			alpha = value
			best = m
			found = true
		}
	}
	return best, alpha, found
}

// alphaBeta returns the negamax score of the position from the side to
// move's perspective. Draw rules are checked before anything else so a
// repeated or dead position scores zero regardless of material.
func (s *Searcher) alphaBeta(pos *board.Position, depth int, alpha, beta float64) float64 {
	if pos.HalfMoveClock >= 100 || pos.InsufficientMaterial() || pos.IsDrawByRepetition() {
		return 0
	}

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta, s.quiescenceDepth)
	}

	moves := pos.LegalMoves()
	orderMoves(moves)
	if len(moves) == 0 {
		if pos.InCheck(pos.SideToMove) {
			// Prefer shorter mates: deeper nodes score slightly worse.
			return -MateValue + float64(5-depth)
		}
		return 0
	}

	value := math.Inf(-1)
	for _, m := range moves {
		pos.Apply(m)
		score := -s.alphaBeta(pos, depth-1, -beta, -alpha)
		pos.Undo()
		if score > value {
			value = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return value
}

// quiescence extends the search through capture sequences so the evaluator
// is never consulted mid-exchange.
func (s *Searcher) quiescence(pos *board.Position, alpha, beta float64, depth int) float64 {
	standPat := s.eval.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if depth <= 0 {
		return standPat
	}

	moves := pos.LegalMoves()
	orderMoves(moves)
	for _, m := range moves {
		if m.Captured == board.NoPiece && !m.IsEnPassant {
			continue
		}
		pos.Apply(m)
		score := -s.quiescence(pos, -beta, -alpha, depth-1)
		pos.Undo()
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
