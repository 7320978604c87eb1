package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartBoardFEN is the piece placement field of the starting position.
const StartBoardFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Board is a flat 64-cell piece grid, indexed by Square.
// Cell 0 is a8; cells run left to right, top rank first, as in FEN.
type Board [64]Piece

// StartingBoard returns the standard initial setup.
func StartingBoard() Board {
	b, _ := ParseBoard(StartBoardFEN)
	return b
}

// ParseBoard parses the piece placement field of a FEN string.
// Digits expand to that many empty cells. It fails when the row count is
// not 8 or the expanded cell count is not 64.
func ParseBoard(placement string) (Board, error) {
	var b Board
	for i := range b {
		b[i] = NoPiece
	}

	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return b, fmt.Errorf("%w: piece placement needs 8 rows, got %d", ErrFormat, len(rows))
	}

	cell := 0
	for _, row := range rows {
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= '1' && c <= '8' {
				cell += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return b, fmt.Errorf("%w: invalid piece character %q", ErrFormat, c)
			}
			if cell >= 64 {
				return b, fmt.Errorf("%w: piece placement has more than 64 cells", ErrFormat)
			}
			b[cell] = piece
			cell++
		}
	}
	if cell != 64 {
		return b, fmt.Errorf("%w: piece placement has %d cells, want 64", ErrFormat, cell)
	}

	return b, nil
}

// FEN returns the piece placement field, run-length-encoding empty cells.
func (b *Board) FEN() string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b[NewSquare(row, file)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// LocateKing returns the square of the given color's king.
// Exactly one king per color is a position invariant, so a missing king is
// reported as an illegal state rather than handled.
func (b *Board) LocateKing(c Color) (Square, error) {
	target := NewPiece(King, c)
	for sq := Square(0); sq < NoSquare; sq++ {
		if b[sq] == target {
			return sq, nil
		}
	}
	return NoSquare, fmt.Errorf("%w: no %s king on board", ErrIllegalState, c)
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for row := 0; row < 8; row++ {
		sb.WriteString(fmt.Sprintf("%d  ", 8-row))
		for file := 0; file < 8; file++ {
			sb.WriteString(b[NewSquare(row, file)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
