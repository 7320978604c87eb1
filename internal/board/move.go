package board

import (
	"fmt"
	"strings"
)

// Move is a value object describing a single move. Captured is a cache used
// for undo and move ordering; it is never authoritative for legality.
type Move struct {
	From        Square
	To          Square
	Promotion   PieceType // NoPieceType when not a promotion
	IsCastle    bool
	IsEnPassant bool
	Captured    Piece // NoPiece when nothing is captured
}

// Equal reports structural equality on (from, to, promotion).
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promotion == other.Promotion
}

// String returns the 4-5 character move text (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}

// FindMove matches 4-5 character move text against a legal move set.
// A syntactically valid move that is not in the set is a policy rejection,
// signaled by ok=false; malformed text returns an ErrFormat error.
func FindMove(text string, legal []Move) (Move, bool, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) != 4 && len(text) != 5 {
		return Move{}, false, fmt.Errorf("%w: move text %q must be 4 or 5 characters", ErrFormat, text)
	}

	from, err := ParseSquare(text[0:2])
	if err != nil {
		return Move{}, false, err
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, false, err
	}

	promo := NoPieceType
	if len(text) == 5 {
		switch text[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return Move{}, false, fmt.Errorf("%w: invalid promotion letter %q", ErrFormat, text[4])
		}
	}

	for _, m := range legal {
		if m.From != from || m.To != to {
			continue
		}
		if promo == NoPieceType || m.Promotion == promo {
			return m, true, nil
		}
	}
	return Move{}, false, nil
}
