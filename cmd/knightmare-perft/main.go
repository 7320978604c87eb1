// Command knightmare-perft counts move-generation tree nodes, optionally
// split per root move and cross-checked against an independent generator.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"github.com/Anoncoder666/Knightmare/internal/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "position in FEN")
	depth := flag.Int("depth", 5, "perft depth")
	divide := flag.Bool("divide", false, "print node counts per root move")
	crosscheck := flag.Bool("crosscheck", false, "compare against the dragontoothmg generator")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN: %v", err)
	}

	if *divide {
		counts := board.Divide(pos, *depth)
		texts := make([]string, 0, len(counts))
		for text := range counts {
			texts = append(texts, text)
		}
		sort.Strings(texts)
		var total uint64
		for _, text := range texts {
			fmt.Printf("%s: %d\n", text, counts[text])
			total += counts[text]
		}
		fmt.Printf("total: %d\n", total)
		return
	}

	start := time.Now()
	nodes := board.Perft(pos, *depth)
	elapsed := time.Since(start)
	fmt.Printf("perft(%d) = %d (%.2fs)\n", *depth, nodes, elapsed.Seconds())

	if *crosscheck {
		ref := dragontoothmg.ParseFen(pos.FEN())
		refNodes := referencePerft(&ref, *depth)
		if refNodes != nodes {
			log.Fatalf("crosscheck failed: got %d, reference says %d", nodes, refNodes)
		}
		fmt.Println("crosscheck ok")
	}
}

// referencePerft walks the dragontoothmg move tree for comparison.
func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}
