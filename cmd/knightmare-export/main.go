// Command knightmare-export dumps stored self-play samples as JSON lines for
// the offline trainer.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/Anoncoder666/Knightmare/internal/storage"
)

func main() {
	dbDir := flag.String("db", "", "sample database directory (empty for the platform default)")
	output := flag.String("output", "", "output file (empty for stdout)")
	flag.Parse()

	store, err := openStore(*dbDir)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)

	count := 0
	err = store.ForEachSample(func(s *storage.Sample) error {
		count++
		return enc.Encode(s)
	})
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("exported %d samples", count)
}

func openStore(dir string) (*storage.Store, error) {
	if dir == "" {
		return storage.OpenDefault()
	}
	return storage.Open(dir)
}
