package board

import (
	"strings"
	"testing"
)

// applyMoves plays the given move texts, failing the test if any is not legal.
func applyMoves(t *testing.T, pos *Position, texts ...string) {
	t.Helper()
	for _, text := range texts {
		move, ok, err := FindMove(text, pos.LegalMoves())
		if err != nil {
			t.Fatalf("bad move text %q: %v", text, err)
		}
		if !ok {
			t.Fatalf("move %q is not legal in %s", text, pos.FEN())
		}
		pos.Apply(move)
	}
}

func TestApplyUndoRestoresState(t *testing.T) {
	pos := StartingPosition()
	want := pos.FEN()

	applyMoves(t, pos, "e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4")
	for i := 0; i < 7; i++ {
		pos.Undo()
	}

	if got := pos.FEN(); got != want {
		t.Errorf("after undoing all moves FEN = %q, want %q", got, want)
	}
	if pos.RepetitionCount() != 1 {
		t.Errorf("repetition count = %d, want 1", pos.RepetitionCount())
	}
}

func TestApplyBasicMove(t *testing.T) {
	pos := StartingPosition()
	applyMoves(t, pos, "e2e4")

	if pos.Board[E2] != NoPiece {
		t.Errorf("e2 still occupied after e2e4")
	}
	if pos.Board[E4] != WhitePawn {
		t.Errorf("e4 = %v, want white pawn", pos.Board[E4])
	}
	if pos.SideToMove != Black {
		t.Errorf("side to move = %v, want Black", pos.SideToMove)
	}
	if pos.EnPassant != E3 {
		t.Errorf("en passant target = %v, want e3", pos.EnPassant)
	}
}

func TestCastlingApplyUndo(t *testing.T) {
	tests := []struct {
		name     string
		move     string
		kingTo   Square
		rookFrom Square
		rookTo   Square
		rook     Piece
	}{
		{"white kingside", "e1g1", G1, H1, F1, WhiteRook},
		{"white queenside", "e1c1", C1, A1, D1, WhiteRook},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			before := pos.FEN()

			applyMoves(t, pos, tc.move)
			if pos.Board[tc.kingTo] != WhiteKing {
				t.Errorf("%v = %v, want white king", tc.kingTo, pos.Board[tc.kingTo])
			}
			if pos.Board[tc.rookTo] != tc.rook {
				t.Errorf("%v = %v, want rook", tc.rookTo, pos.Board[tc.rookTo])
			}
			if pos.Board[tc.rookFrom] != NoPiece {
				t.Errorf("%v still occupied", tc.rookFrom)
			}
			if pos.CastlingRights.CanCastle(White, true) || pos.CastlingRights.CanCastle(White, false) {
				t.Errorf("white castling rights survived castling: %v", pos.CastlingRights)
			}
			if !pos.CastlingRights.CanCastle(Black, true) || !pos.CastlingRights.CanCastle(Black, false) {
				t.Errorf("black castling rights lost: %v", pos.CastlingRights)
			}

			pos.Undo()
			if got := pos.FEN(); got != before {
				t.Errorf("undo FEN = %q, want %q", got, before)
			}
		})
	}
}

func TestEnPassantApplyUndo(t *testing.T) {
	pos := StartingPosition()
	applyMoves(t, pos, "e2e4", "a7a6", "e4e5", "d7d5")

	if pos.EnPassant != D6 {
		t.Fatalf("en passant target = %v, want d6", pos.EnPassant)
	}
	before := pos.FEN()

	move, ok, err := FindMove("e5d6", pos.LegalMoves())
	if err != nil || !ok {
		t.Fatalf("e5d6 not found: ok=%v err=%v", ok, err)
	}
	if !move.IsEnPassant {
		t.Fatalf("e5d6 not flagged en passant")
	}

	pos.Apply(move)
	if pos.Board[D5] != NoPiece {
		t.Errorf("captured pawn still on d5")
	}
	if pos.Board[D6] != WhitePawn {
		t.Errorf("d6 = %v, want white pawn", pos.Board[D6])
	}
	if pos.HalfMoveClock != 0 {
		t.Errorf("halfmove clock = %d, want 0 after capture", pos.HalfMoveClock)
	}

	pos.Undo()
	if got := pos.FEN(); got != before {
		t.Errorf("undo FEN = %q, want %q", got, before)
	}
}

func TestPromotionApplyUndo(t *testing.T) {
	pos, err := ParseFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	before := pos.FEN()

	for _, tc := range []struct {
		text string
		want Piece
	}{
		{"a7a8q", WhiteQueen},
		{"a7a8r", WhiteRook},
		{"a7a8b", WhiteBishop},
		{"a7a8n", WhiteKnight},
	} {
		applyMoves(t, pos, tc.text)
		if pos.Board[A8] != tc.want {
			t.Errorf("%s: a8 = %v, want %v", tc.text, pos.Board[A8], tc.want)
		}
		pos.Undo()
		if got := pos.FEN(); got != before {
			t.Errorf("%s: undo FEN = %q, want %q", tc.text, got, before)
		}
	}
}

func TestCastlingRightsClearing(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		lost  CastlingRights
		kept  CastlingRights
	}{
		{"king move", []string{"e1e2"}, WhiteKingSideCastle | WhiteQueenSideCastle, BlackKingSideCastle | BlackQueenSideCastle},
		{"kingside rook move", []string{"h1h2"}, WhiteKingSideCastle, WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle},
		{"queenside rook move", []string{"a1a2"}, WhiteQueenSideCastle, WhiteKingSideCastle | BlackKingSideCastle | BlackQueenSideCastle},
		{"rook captured on a8", []string{"a1a8"}, WhiteQueenSideCastle | BlackQueenSideCastle, WhiteKingSideCastle | BlackKingSideCastle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			applyMoves(t, pos, tc.moves...)
			if pos.CastlingRights&tc.lost != 0 {
				t.Errorf("rights %v should be cleared, have %v", tc.lost, pos.CastlingRights)
			}
			if pos.CastlingRights&tc.kept != tc.kept {
				t.Errorf("rights %v should be kept, have %v", tc.kept, pos.CastlingRights)
			}
		})
	}
}

func TestClocks(t *testing.T) {
	pos := StartingPosition()

	applyMoves(t, pos, "g1f3")
	if pos.HalfMoveClock != 1 {
		t.Errorf("halfmove clock = %d, want 1 after knight move", pos.HalfMoveClock)
	}
	if pos.FullMoveNumber != 1 {
		t.Errorf("fullmove number = %d, want 1 after white's move", pos.FullMoveNumber)
	}

	applyMoves(t, pos, "g8f6")
	if pos.HalfMoveClock != 2 {
		t.Errorf("halfmove clock = %d, want 2", pos.HalfMoveClock)
	}
	if pos.FullMoveNumber != 2 {
		t.Errorf("fullmove number = %d, want 2 after black's move", pos.FullMoveNumber)
	}

	applyMoves(t, pos, "e2e4")
	if pos.HalfMoveClock != 0 {
		t.Errorf("halfmove clock = %d, want 0 after pawn move", pos.HalfMoveClock)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	pos := StartingPosition()

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	applyMoves(t, pos, shuffle...)
	if pos.RepetitionCount() != 2 {
		t.Fatalf("repetition count = %d, want 2", pos.RepetitionCount())
	}
	if pos.IsDrawByRepetition() {
		t.Fatalf("draw declared at two occurrences")
	}

	applyMoves(t, pos, shuffle...)
	if pos.RepetitionCount() != 3 {
		t.Fatalf("repetition count = %d, want 3", pos.RepetitionCount())
	}
	if !pos.IsDrawByRepetition() {
		t.Errorf("threefold repetition not detected")
	}

	pos.Undo()
	if pos.IsDrawByRepetition() {
		t.Errorf("draw flag survived undo")
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	pos := StartingPosition()
	pos.Undo()
	if got := pos.FEN(); got != StartFEN {
		t.Errorf("undo on fresh position changed state: %q", got)
	}
}

func TestApplyPanicsOnEmptySource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("apply from empty square did not panic")
		}
	}()
	pos := StartingPosition()
	pos.Apply(Move{From: E4, To: E5, Promotion: NoPieceType})
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/8/8/8/8/K6k w - - 0 1", true},
		{"8/8/8/8/3B4/8/8/K6k w - - 0 1", true},
		{"8/8/8/8/3n4/8/8/K6k w - - 0 1", true},
		{"8/8/8/8/3R4/8/8/K6k w - - 0 1", false},
		{"8/8/8/8/3P4/8/8/K6k w - - 0 1", false},
		{"8/8/8/8/2BB4/8/8/K6k w - - 0 1", false},
		{StartFEN, false},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			if got := pos.InsufficientMaterial(); got != tc.want {
				t.Errorf("InsufficientMaterial() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsSquareAttacked(t *testing.T) {
	pos := StartingPosition()

	tests := []struct {
		sq   Square
		by   Color
		want bool
	}{
		{E3, White, true},  // pawn attacks from d2/f2
		{F3, White, true},  // knight on g1
		{E4, White, false}, // no white piece reaches e4
		{D6, Black, true},
		{E5, Black, false},
	}
	for _, tc := range tests {
		if got := pos.IsSquareAttacked(tc.sq, tc.by); got != tc.want {
			t.Errorf("IsSquareAttacked(%v, %v) = %v, want %v", tc.sq, tc.by, got, tc.want)
		}
	}
}

func TestInCheck(t *testing.T) {
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if !pos.InCheck(White) {
		t.Errorf("white not reported in check from the h4 queen")
	}
	if pos.InCheck(Black) {
		t.Errorf("black wrongly reported in check")
	}
}

func TestCloneIndependence(t *testing.T) {
	pos := StartingPosition()
	clone := pos.Clone()

	applyMoves(t, pos, "e2e4")
	if clone.FEN() != StartFEN {
		t.Errorf("clone changed when original moved: %q", clone.FEN())
	}
	if !strings.Contains(pos.FEN(), " b ") {
		t.Errorf("original did not advance: %q", pos.FEN())
	}
}
