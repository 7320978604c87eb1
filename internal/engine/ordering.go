package engine

import (
	"golang.org/x/exp/slices"

	"github.com/Anoncoder666/Knightmare/internal/board"
)

// orderMoves sorts captures first, most valuable victim first, to tighten
// alpha-beta cutoffs. The sort is stable so quiet moves keep generation order.
func orderMoves(moves []board.Move) {
	slices.SortStableFunc(moves, func(a, b board.Move) int {
		return victimValue(b) - victimValue(a)
	})
}

// victimValue scores a move by its captured piece. En passant captures carry
// no Captured cache and sort with the quiet moves.
func victimValue(m board.Move) int {
	if m.Captured == board.NoPiece {
		return 0
	}
	return m.Captured.Value()
}
