package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key prefixes
const (
	samplePrefix = "sample:"
)

// Sample is one labeled training position produced by self-play.
// Value is the game outcome oriented to the side to move of the FEN:
// +1 win, 0 draw, -1 loss.
type Sample struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	FEN       string    `json:"fen"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Store wraps BadgerDB for persistent sample storage.
type Store struct {
	db *badger.DB
}

// Open opens a store at the given directory. An empty dir opens an in-memory
// store, which tests use.
func Open(dir string) (*Store, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the store at the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// PutSamples writes a batch of samples in one transaction, assigning IDs and
// timestamps where missing.
func (s *Store) PutSamples(samples []*Sample) error {
	now := time.Now()
	return s.db.Update(func(txn *badger.Txn) error {
		for _, sample := range samples {
			if sample.ID == "" {
				sample.ID = uuid.NewString()
			}
			if sample.CreatedAt.IsZero() {
				sample.CreatedAt = now
			}
			data, err := json.Marshal(sample)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(samplePrefix+sample.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// PutSample writes a single sample.
func (s *Store) PutSample(sample *Sample) error {
	return s.PutSamples([]*Sample{sample})
}

// ForEachSample calls fn for every stored sample. Returning an error from fn
// stops the iteration.
func (s *Store) ForEachSample(fn func(*Sample) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(samplePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var sample Sample
				if err := json.Unmarshal(val, &sample); err != nil {
					return err
				}
				return fn(&sample)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CountSamples returns the number of stored samples.
func (s *Store) CountSamples() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(samplePrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
