package board

// Perft counts the leaf nodes of the legal move tree to the given depth. It
// is a correctness probe for the generator, not a performance feature.
func Perft(pos *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		pos.Apply(m)
		nodes += Perft(pos, depth-1)
		pos.Undo()
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by move text.
func Divide(pos *Position, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	for _, m := range pos.LegalMoves() {
		pos.Apply(m)
		counts[m.String()] = Perft(pos, depth-1)
		pos.Undo()
	}
	return counts
}
