package engine

import (
	"math"
	"testing"

	"github.com/Anoncoder666/Knightmare/internal/board"
	"github.com/Anoncoder666/Knightmare/internal/eval"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func TestSearchReturnsLegalMove(t *testing.T) {
	pos := board.StartingPosition()
	s := NewSearcher(eval.Material{})

	best, score, found := s.Search(pos, 1)
	if !found {
		t.Fatalf("no move found in the starting position")
	}
	if math.IsInf(score, 0) || math.IsNaN(score) {
		t.Errorf("score = %v, want finite", score)
	}

	legal := false
	for _, m := range pos.LegalMoves() {
		if m.Equal(best) {
			legal = true
		}
	}
	if !legal {
		t.Errorf("returned move %v is not legal", best)
	}
}

func TestSearchLeavesPositionIntact(t *testing.T) {
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := pos.FEN()

	s := NewSearcher(eval.Material{})
	if _, _, found := s.Search(pos, 2); !found {
		t.Fatalf("no move found")
	}
	if got := pos.FEN(); got != before {
		t.Errorf("search mutated the position: %q, want %q", got, before)
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	tests := []struct {
		fen  string
		want string
	}{
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8"},
		{"3qk3/8/8/8/8/8/5PPP/6K1 b - - 0 1", "d8d1"},
	}

	s := NewSearcher(eval.Material{})
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			best, score, found := s.Search(pos, 2)
			if !found {
				t.Fatalf("no move found")
			}
			if best.String() != tc.want {
				t.Errorf("best move = %v (score %.1f), want %s", best, score, tc.want)
			}
			if score < MateValue/2 {
				t.Errorf("mate score = %.1f, want mate magnitude", score)
			}
		})
	}
}

func TestSearchDefendsBackRankMate(t *testing.T) {
	// Black threatens Ra1#; at depth 3 white sees it and makes luft instead
	// of shuffling into the mate.
	pos := mustParse(t, "6k1/5ppp/8/8/8/8/r4PPP/6K1 w - - 0 1")
	s := NewSearcher(eval.Material{})

	best, score, found := s.Search(pos, 3)
	if !found {
		t.Fatalf("no move found")
	}
	if score < -MateValue/2 {
		t.Errorf("best move %v scores %.1f, search walked into a defensible mate", best, score)
	}

	pos.Apply(best)
	for _, m := range pos.LegalMoves() {
		pos.Apply(m)
		mated := pos.IsCheckmate()
		pos.Undo()
		if mated {
			t.Errorf("after %v black mates with %v", best, m)
		}
	}
}

func TestSearchNoLegalMoves(t *testing.T) {
	fens := []string{
		"7k/5Q2/8/8/8/8/8/K7 b - - 0 1", // stalemate
		"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", // checkmate
	}

	s := NewSearcher(eval.Material{})
	for _, fen := range fens {
		pos := mustParse(t, fen)
		move, score, found := s.Search(pos, 3)
		if found {
			t.Errorf("%s: found %v with score %.2f, want no move", fen, move, score)
		}
		if score != 0 {
			t.Errorf("%s: score = %.2f, want 0", fen, score)
		}
	}
}

func TestDrawNodesScoreZero(t *testing.T) {
	s := NewSearcher(eval.Material{})
	inf := math.Inf(1)

	// Fifty-move rule, even with a queen up.
	pos := mustParse(t, "4k3/8/8/8/8/8/8/QK6 w - - 100 80")
	if got := s.alphaBeta(pos, 3, -inf, inf); got != 0 {
		t.Errorf("fifty-move node score = %.2f, want 0", got)
	}

	// Insufficient material.
	pos = mustParse(t, "8/8/8/8/3b4/8/8/K6k w - - 0 1")
	if got := s.alphaBeta(pos, 3, -inf, inf); got != 0 {
		t.Errorf("insufficient material node score = %.2f, want 0", got)
	}

	// Threefold repetition built up through the apply path.
	pos = board.StartingPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 2; i++ {
		for _, text := range shuffle {
			move, ok, err := board.FindMove(text, pos.LegalMoves())
			if err != nil || !ok {
				t.Fatalf("bad shuffle move %q: ok=%v err=%v", text, ok, err)
			}
			pos.Apply(move)
		}
	}
	if !pos.IsDrawByRepetition() {
		t.Fatalf("shuffle did not produce a threefold repetition")
	}
	if got := s.alphaBeta(pos, 3, -inf, inf); got != 0 {
		t.Errorf("repetition node score = %.2f, want 0", got)
	}
}

func TestShorterMatePreferred(t *testing.T) {
	// Mate in one must outscore a deeper mate: the depth adjustment makes
	// nodes closer to the root worth more.
	nearer := -(-MateValue + float64(5-1))
	farther := -(-MateValue + float64(5-3))
	if nearer <= farther {
		t.Errorf("mate-in-one score %.1f not above deeper mate score %.1f", nearer, farther)
	}
}

func TestOrderMovesCapturesFirst(t *testing.T) {
	moves := []board.Move{
		{From: board.E2, To: board.E4, Promotion: board.NoPieceType},
		{From: board.D4, To: board.E5, Promotion: board.NoPieceType, Captured: board.BlackPawn},
		{From: board.D1, To: board.D8, Promotion: board.NoPieceType, Captured: board.BlackQueen},
		{From: board.F3, To: board.E5, Promotion: board.NoPieceType, Captured: board.BlackKnight},
	}
	orderMoves(moves)

	if moves[0].Captured != board.BlackQueen {
		t.Errorf("first move captures %v, want the queen", moves[0].Captured)
	}
	if moves[1].Captured != board.BlackKnight {
		t.Errorf("second move captures %v, want the knight", moves[1].Captured)
	}
	if moves[3].Captured != board.NoPiece {
		t.Errorf("quiet move ordered before captures")
	}
}

func TestQuiescenceDepthSetting(t *testing.T) {
	s := NewSearcher(eval.Material{})
	s.SetQuiescenceDepth(0)

	// With the extension disabled the horizon evaluation is the raw
	// stand-pat score; the search still runs.
	pos := board.StartingPosition()
	if _, _, found := s.Search(pos, 1); !found {
		t.Errorf("search failed with quiescence disabled")
	}
}
