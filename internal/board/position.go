package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = StartBoardFEN + " w KQkq - 0 1"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// undoRecord captures everything needed to restore the exact prior snapshot.
type undoRecord struct {
	move      Move
	moved     Piece
	captured  Piece
	castling  CastlingRights
	enPassant Square
	halfMove  int
	fullMove  int
	side      Color
	rookFrom  Square
	rookTo    Square
	rookPiece Piece
	epVictim  Square
	repKey    string
}

// Position represents a complete chess position: the board plus side to move,
// castling rights, en passant target, clocks, the repetition table and the
// undo history. All state changes go through Apply/Undo.
type Position struct {
	Board          Board
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Plies since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1

	repetition map[string]int
	history    []undoRecord
}

// StartingPosition creates the starting position.
func StartingPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// ParseFEN parses a full six-field FEN string and returns a Position.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: FEN needs 6 fields, got %d", ErrFormat, len(parts))
	}

	b, err := ParseBoard(parts[0])
	if err != nil {
		return nil, err
	}

	pos := &Position{
		Board:      b,
		EnPassant:  NoSquare,
		repetition: make(map[string]int),
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move %q", ErrFormat, parts[1])
	}

	if parts[2] != "-" {
		for i := 0; i < len(parts[2]); i++ {
			switch parts[2][i] {
			case 'K':
				pos.CastlingRights |= WhiteKingSideCastle
			case 'Q':
				pos.CastlingRights |= WhiteQueenSideCastle
			case 'k':
				pos.CastlingRights |= BlackKingSideCastle
			case 'q':
				pos.CastlingRights |= BlackQueenSideCastle
			default:
				return nil, fmt.Errorf("%w: invalid castling character %q", ErrFormat, parts[2][i])
			}
		}
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, err
		}
		pos.EnPassant = sq
	}

	halfMove, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid halfmove clock %q", ErrFormat, parts[4])
	}
	pos.HalfMoveClock = halfMove

	fullMove, err := strconv.Atoi(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid fullmove number %q", ErrFormat, parts[5])
	}
	pos.FullMoveNumber = fullMove

	pos.bumpRepetition()

	return pos, nil
}

// FEN returns the full six-field FEN representation of the position.
func (p *Position) FEN() string {
	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		p.Board.FEN(), side, p.CastlingRights, p.EnPassant,
		p.HalfMoveClock, p.FullMoveNumber)
}

// RepetitionKey identifies the position for threefold detection: everything
// except the two clocks.
func (p *Position) RepetitionKey() string {
	return fmt.Sprintf("%s %s %s %s",
		p.Board.FEN(), p.SideToMove, p.CastlingRights, p.EnPassant)
}

// bumpRepetition increments the count for the current repetition key.
func (p *Position) bumpRepetition() string {
	key := p.RepetitionKey()
	p.repetition[key]++
	return key
}

// RepetitionCount returns the occurrence count of the current position.
func (p *Position) RepetitionCount() int {
	return p.repetition[p.RepetitionKey()]
}

// IsDrawByRepetition returns true if the current position occurred at least
// three times.
func (p *Position) IsDrawByRepetition() bool {
	return p.RepetitionCount() >= 3
}

// Clone returns an independent deep copy. It exists for callers that need a
// snapshot (e.g., the CLI echoing a position); the search never clones inside
// its hot path.
func (p *Position) Clone() *Position {
	clone := &Position{
		Board:          p.Board,
		SideToMove:     p.SideToMove,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
		repetition:     make(map[string]int, len(p.repetition)),
		history:        append([]undoRecord(nil), p.history...),
	}
	for k, v := range p.repetition {
		clone.repetition[k] = v
	}
	return clone
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := p.Board.String()
	s += fmt.Sprintf("\nSide to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	return s
}

// Apply mutates the position by the given move and pushes an undo record.
// It is the only way state changes. The move must come from LegalMoves of
// this same position: applying an arbitrary move is undefined behavior by
// contract, and applying from an empty square panics.
func (p *Position) Apply(m Move) {
	moved := p.Board[m.From]
	if moved == NoPiece {
		panic(fmt.Sprintf("board: apply %s: no piece on source square", m))
	}

	rec := undoRecord{
		move:      m,
		moved:     moved,
		captured:  NoPiece,
		castling:  p.CastlingRights,
		enPassant: p.EnPassant,
		halfMove:  p.HalfMoveClock,
		fullMove:  p.FullMoveNumber,
		side:      p.SideToMove,
		rookFrom:  NoSquare,
		rookTo:    NoSquare,
		rookPiece: NoPiece,
		epVictim:  NoSquare,
	}

	// Resolve the captured piece. En passant removes the pawn behind the
	// target square, not the piece on it.
	if m.IsEnPassant {
		victim := m.To + 8
		if p.SideToMove == Black {
			victim = m.To - 8
		}
		rec.captured = p.Board[victim]
		rec.epVictim = victim
		p.Board[victim] = NoPiece
	} else if target := p.Board[m.To]; target != NoPiece {
		rec.captured = target
	}

	// Move the piece, rewriting it on promotion.
	p.Board[m.From] = NoPiece
	placed := moved
	if m.Promotion != NoPieceType {
		placed = NewPiece(m.Promotion, p.SideToMove)
	}
	p.Board[m.To] = placed

	// Relocate the rook on castling. Validity was the generator's job.
	if m.IsCastle {
		var rookFrom, rookTo Square
		switch m.To {
		case G1:
			rookFrom, rookTo = H1, F1
		case C1:
			rookFrom, rookTo = A1, D1
		case G8:
			rookFrom, rookTo = H8, F8
		case C8:
			rookFrom, rookTo = A8, D8
		}
		rec.rookFrom, rec.rookTo = rookFrom, rookTo
		rec.rookPiece = p.Board[rookFrom]
		p.Board[rookFrom] = NoPiece
		p.Board[rookTo] = rec.rookPiece
	}

	// Moving or capturing a king/rook clears the rights tied to that square.
	// Rights are never re-added.
	switch moved {
	case WhiteKing:
		p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
	case BlackKing:
		p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
	case WhiteRook:
		if m.From == A1 {
			p.CastlingRights &^= WhiteQueenSideCastle
		} else if m.From == H1 {
			p.CastlingRights &^= WhiteKingSideCastle
		}
	case BlackRook:
		if m.From == A8 {
			p.CastlingRights &^= BlackQueenSideCastle
		} else if m.From == H8 {
			p.CastlingRights &^= BlackKingSideCastle
		}
	}
	switch {
	case rec.captured == WhiteRook && m.To == A1:
		p.CastlingRights &^= WhiteQueenSideCastle
	case rec.captured == WhiteRook && m.To == H1:
		p.CastlingRights &^= WhiteKingSideCastle
	case rec.captured == BlackRook && m.To == A8:
		p.CastlingRights &^= BlackQueenSideCastle
	case rec.captured == BlackRook && m.To == H8:
		p.CastlingRights &^= BlackKingSideCastle
	}

	// En passant target: set only on a double pawn push, cleared otherwise.
	p.EnPassant = NoSquare
	if moved.Type() == Pawn && abs(int(m.To)-int(m.From)) == 16 {
		p.EnPassant = Square((int(m.To) + int(m.From)) / 2)
	}

	if moved.Type() == Pawn || rec.captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if p.SideToMove == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = p.SideToMove.Other()

	rec.repKey = p.bumpRepetition()
	p.history = append(p.history, rec)
}

// Undo pops the last undo record and restores the exact prior snapshot.
// It is a no-op on empty history.
func (p *Position) Undo() {
	if len(p.history) == 0 {
		return
	}
	rec := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	if n := p.repetition[rec.repKey]; n <= 1 {
		delete(p.repetition, rec.repKey)
	} else {
		p.repetition[rec.repKey] = n - 1
	}

	p.SideToMove = rec.side
	p.CastlingRights = rec.castling
	p.EnPassant = rec.enPassant
	p.HalfMoveClock = rec.halfMove
	p.FullMoveNumber = rec.fullMove

	// Reverse the board edits: rook first for castles, then the moved piece
	// in its pre-promotion identity, then the captured piece.
	if rec.move.IsCastle && rec.rookFrom != NoSquare {
		p.Board[rec.rookFrom] = rec.rookPiece
		p.Board[rec.rookTo] = NoPiece
	}

	p.Board[rec.move.From] = rec.moved
	if rec.move.IsEnPassant {
		p.Board[rec.move.To] = NoPiece
		p.Board[rec.epVictim] = rec.captured
	} else {
		p.Board[rec.move.To] = rec.captured
	}
}

// IsSquareAttacked reports whether the given square is attacked by the given
// color, independent of whose turn it is. This is the single primitive behind
// both check detection and castling path safety.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	row, file := sq.Row(), sq.File()

	// Pawn attackers sit one diagonal step in the attacking direction.
	pawnRow := row + 1
	if by == Black {
		pawnRow = row - 1
	}
	attackerPawn := NewPiece(Pawn, by)
	for _, df := range [2]int{-1, 1} {
		if onBoard(pawnRow, file+df) && p.Board[NewSquare(pawnRow, file+df)] == attackerPawn {
			return true
		}
	}

	// Knight ells.
	attackerKnight := NewPiece(Knight, by)
	for _, step := range knightSteps {
		r, f := row+step[0], file+step[1]
		if onBoard(r, f) && p.Board[NewSquare(r, f)] == attackerKnight {
			return true
		}
	}

	// Sliding attackers: ray-cast until blocked.
	attackerBishop := NewPiece(Bishop, by)
	attackerRook := NewPiece(Rook, by)
	attackerQueen := NewPiece(Queen, by)
	for _, dir := range diagonalDirs {
		r, f := row+dir[0], file+dir[1]
		for onBoard(r, f) {
			piece := p.Board[NewSquare(r, f)]
			if piece != NoPiece {
				if piece == attackerBishop || piece == attackerQueen {
					return true
				}
				break
			}
			r += dir[0]
			f += dir[1]
		}
	}
	for _, dir := range orthogonalDirs {
		r, f := row+dir[0], file+dir[1]
		for onBoard(r, f) {
			piece := p.Board[NewSquare(r, f)]
			if piece != NoPiece {
				if piece == attackerRook || piece == attackerQueen {
					return true
				}
				break
			}
			r += dir[0]
			f += dir[1]
		}
	}

	// Adjacent enemy king.
	attackerKing := NewPiece(King, by)
	for _, dir := range kingDirs {
		r, f := row+dir[0], file+dir[1]
		if onBoard(r, f) && p.Board[NewSquare(r, f)] == attackerKing {
			return true
		}
	}

	return false
}

// InCheck reports whether the given color's king is attacked.
func (p *Position) InCheck(c Color) bool {
	king, err := p.Board.LocateKing(c)
	if err != nil {
		panic(err)
	}
	return p.IsSquareAttacked(king, c.Other())
}

// InsufficientMaterial returns true iff only kings remain, or exactly one
// minor piece plus the two kings. This is a deliberate approximation: it does
// not recognize two-knight or same-colored-bishop endings as drawn.
func (p *Position) InsufficientMaterial() bool {
	pieces := 0
	minors := 0
	for _, piece := range p.Board {
		if piece == NoPiece {
			continue
		}
		pieces++
		switch piece.Type() {
		case Bishop, Knight:
			minors++
		}
	}
	if pieces == 2 {
		return true
	}
	return pieces == 3 && minors == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
