package eval

import "github.com/Anoncoder666/Knightmare/internal/board"

// Feature layout: one 64-square plane per piece (white PNBRQK then black
// pnbrqk, matching the board.Piece encoding), followed by side to move and
// the four castling flags.
const (
	planeCount  = 12
	planeSize   = 64
	extraCount  = 5
	FeatureSize = planeCount*planeSize + extraCount
)

// EncodePosition encodes a position into a flat feature vector for the model.
func EncodePosition(pos *board.Position) []float64 {
	vec := make([]float64, FeatureSize)
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		piece := pos.Board[sq]
		if piece == board.NoPiece {
			continue
		}
		vec[int(piece)*planeSize+int(sq)] = 1
	}

	offset := planeCount * planeSize
	if pos.SideToMove == board.White {
		vec[offset] = 1
	} else {
		vec[offset] = -1
	}
	if pos.CastlingRights.CanCastle(board.White, true) {
		vec[offset+1] = 1
	}
	if pos.CastlingRights.CanCastle(board.White, false) {
		vec[offset+2] = 1
	}
	if pos.CastlingRights.CanCastle(board.Black, true) {
		vec[offset+3] = 1
	}
	if pos.CastlingRights.CanCastle(board.Black, false) {
		vec[offset+4] = 1
	}
	return vec
}
