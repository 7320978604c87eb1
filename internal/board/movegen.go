package board

// Offset tables shared by move generation and attack detection, as
// (row delta, file delta) pairs.
var (
	knightSteps    = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	diagonalDirs   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonalDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	kingDirs       = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoLegalMoves generates candidate moves for the side to move without
// checking whether they leave the mover's king attacked.
func (p *Position) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 64)
	us := p.SideToMove

	for sq := Square(0); sq < NoSquare; sq++ {
		piece := p.Board[sq]
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		switch piece.Type() {
		case Pawn:
			moves = p.genPawnMoves(moves, sq)
		case Knight:
			moves = p.genStepMoves(moves, sq, knightSteps[:])
		case Bishop:
			moves = p.genSlideMoves(moves, sq, diagonalDirs[:])
		case Rook:
			moves = p.genSlideMoves(moves, sq, orthogonalDirs[:])
		case Queen:
			moves = p.genSlideMoves(moves, sq, diagonalDirs[:])
			moves = p.genSlideMoves(moves, sq, orthogonalDirs[:])
		case King:
			moves = p.genStepMoves(moves, sq, kingDirs[:])
			moves = p.genCastlingMoves(moves, sq)
		}
	}

	return moves
}

// LegalMoves filters pseudo-legal moves by speculatively applying each one
// and rejecting those that leave the mover's own king attacked. The
// apply/undo round trip reuses the single attack primitive instead of a
// separate pin calculator.
func (p *Position) LegalMoves() []Move {
	pseudo := p.PseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	mover := p.SideToMove
	for _, m := range pseudo {
		p.Apply(m)
		if !p.InCheck(mover) {
			legal = append(legal, m)
		}
		p.Undo()
	}
	return legal
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.PseudoLegalMoves()
	mover := p.SideToMove
	for _, m := range pseudo {
		p.Apply(m)
		ok := !p.InCheck(mover)
		p.Undo()
		if ok {
			return true
		}
	}
	return false
}

// genPawnMoves emits single and double pushes, diagonal captures, en passant
// and promotions. A promoting push or capture emits four moves, one per
// promotion piece.
func (p *Position) genPawnMoves(moves []Move, from Square) []Move {
	us := p.SideToMove
	them := us.Other()
	row, file := from.Row(), from.File()

	dir, startRow, promoRow := -1, 6, 0
	if us == Black {
		dir, startRow, promoRow = 1, 1, 7
	}

	// Pushes.
	fwd := row + dir
	if onBoard(fwd, file) {
		dest := NewSquare(fwd, file)
		if p.Board[dest] == NoPiece {
			if fwd == promoRow {
				for _, promo := range promotionTypes {
					moves = append(moves, Move{From: from, To: dest, Promotion: promo})
				}
			} else {
				moves = append(moves, Move{From: from, To: dest, Promotion: NoPieceType})

				if row == startRow {
					dest2 := NewSquare(row+2*dir, file)
					if p.Board[dest2] == NoPiece {
						moves = append(moves, Move{From: from, To: dest2, Promotion: NoPieceType})
					}
				}
			}
		}
	}

	// Captures and en passant.
	for _, df := range [2]int{-1, 1} {
		if !onBoard(fwd, file+df) {
			continue
		}
		dest := NewSquare(fwd, file+df)
		target := p.Board[dest]
		if target != NoPiece && target.Color() == them {
			if fwd == promoRow {
				for _, promo := range promotionTypes {
					moves = append(moves, Move{From: from, To: dest, Promotion: promo, Captured: target})
				}
			} else {
				moves = append(moves, Move{From: from, To: dest, Promotion: NoPieceType, Captured: target})
			}
		}
		if p.EnPassant != NoSquare && dest == p.EnPassant {
			moves = append(moves, Move{From: from, To: dest, Promotion: NoPieceType, IsEnPassant: true, Captured: NoPiece})
		}
	}

	return moves
}

// genStepMoves emits fixed-offset moves (knight, king) onto empty or
// enemy-occupied squares.
func (p *Position) genStepMoves(moves []Move, from Square, steps [][2]int) []Move {
	us := p.SideToMove
	row, file := from.Row(), from.File()
	for _, step := range steps {
		r, f := row+step[0], file+step[1]
		if !onBoard(r, f) {
			continue
		}
		dest := NewSquare(r, f)
		target := p.Board[dest]
		if target == NoPiece {
			moves = append(moves, Move{From: from, To: dest, Promotion: NoPieceType})
		} else if target.Color() != us {
			moves = append(moves, Move{From: from, To: dest, Promotion: NoPieceType, Captured: target})
		}
	}
	return moves
}

// genSlideMoves ray-casts per direction until blocked, including the blocking
// square only as a capture.
func (p *Position) genSlideMoves(moves []Move, from Square, dirs [][2]int) []Move {
	us := p.SideToMove
	row, file := from.Row(), from.File()
	for _, dir := range dirs {
		r, f := row+dir[0], file+dir[1]
		for onBoard(r, f) {
			dest := NewSquare(r, f)
			target := p.Board[dest]
			if target == NoPiece {
				moves = append(moves, Move{From: from, To: dest, Promotion: NoPieceType})
			} else {
				if target.Color() != us {
					moves = append(moves, Move{From: from, To: dest, Promotion: NoPieceType, Captured: target})
				}
				break
			}
			r += dir[0]
			f += dir[1]
		}
	}
	return moves
}

// genCastlingMoves emits castling when the right is still held, the squares
// between king and rook are empty, and neither the king's square nor any
// square it traverses is attacked. The rook's path is not checked for
// attacks, only for occupancy.
func (p *Position) genCastlingMoves(moves []Move, from Square) []Move {
	us := p.SideToMove
	them := us.Other()

	if us == White {
		if from != E1 {
			return moves
		}
		if p.CastlingRights.CanCastle(White, true) &&
			p.Board[F1] == NoPiece && p.Board[G1] == NoPiece &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			moves = append(moves, Move{From: E1, To: G1, Promotion: NoPieceType, IsCastle: true})
		}
		if p.CastlingRights.CanCastle(White, false) &&
			p.Board[B1] == NoPiece && p.Board[C1] == NoPiece && p.Board[D1] == NoPiece &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			moves = append(moves, Move{From: E1, To: C1, Promotion: NoPieceType, IsCastle: true})
		}
		return moves
	}

	if from != E8 {
		return moves
	}
	if p.CastlingRights.CanCastle(Black, true) &&
		p.Board[F8] == NoPiece && p.Board[G8] == NoPiece &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
		moves = append(moves, Move{From: E8, To: G8, Promotion: NoPieceType, IsCastle: true})
	}
	if p.CastlingRights.CanCastle(Black, false) &&
		p.Board[B8] == NoPiece && p.Board[C8] == NoPiece && p.Board[D8] == NoPiece &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
		moves = append(moves, Move{From: E8, To: C8, Promotion: NoPieceType, IsCastle: true})
	}
	return moves
}

// IsCheckmate returns true if the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no legal moves but is not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// IsDrawByRule returns true when the fifty-move rule, insufficient material
// or threefold repetition applies.
func (p *Position) IsDrawByRule() bool {
	return p.HalfMoveClock >= 100 || p.InsufficientMaterial() || p.IsDrawByRepetition()
}
