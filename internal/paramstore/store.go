package paramstore

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/Sothatsit/ThreePlayerChess/internal/eval"
)

const keyPrefix = "params/"

// Store wraps BadgerDB for persisting named evaluation-parameter
// vectors, the output of a genetic-algorithm tuning loop that runs
// elsewhere — this package only needs somewhere for those vectors to
// live between runs.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) the parameter database at the
// platform-standard data directory.
func Open() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens the parameter database at an explicit directory, used by
// tests to avoid touching the real platform data directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put saves params under name, overwriting any existing entry.
func (s *Store) Put(name string, params eval.Combined) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("paramstore: marshal %q: %w", name, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+name), data)
	})
}

// Get loads the parameter vector saved under name.
func (s *Store) Get(name string) (eval.Combined, error) {
	var params eval.Combined
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("paramstore: no parameter vector named %q", name)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &params)
		})
	})
	return params, err
}

// List returns every saved parameter vector's name.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			names = append(names, string(key[len(keyPrefix):]))
		}
		return nil
	})
	return names, err
}

// Delete removes the parameter vector saved under name, if any.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + name))
	})
}
