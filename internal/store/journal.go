package store

import (
	"encoding/binary"
	"math"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// Journal persists subset scores so an interrupted search can be resumed
// without re-training models. Keys are namespaced; a namespace identifies
// the dataset, class attribute, classifier and evaluation settings.
type Journal struct {
	db *badger.DB
}

func Open(dir string) (*Journal, error) {
	var opts = badger.DefaultOptions(dir).WithLogger(nil)
	return open(opts)
}

func OpenInMemory() (*Journal, error) {
	var opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*Journal, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open score journal")
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Get(namespace, key string) (float64, bool, error) {
	var (
		value float64
		found bool
	)
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(journalKey(namespace, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return errors.Errorf("corrupt score for %s/%s", namespace, key)
			}
			value = math.Float64frombits(binary.BigEndian.Uint64(val))
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, errors.Wrap(err, "read score")
	}
	return value, found, nil
}

func (j *Journal) Put(namespace, key string, quality float64) error {
	var val = make([]byte, 8)
	binary.BigEndian.PutUint64(val, math.Float64bits(quality))
	err := j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(journalKey(namespace, key), val)
	})
	return errors.Wrap(err, "write score")
}

// Count returns how many scores are stored under namespace.
func (j *Journal) Count(namespace string) (int, error) {
	var prefix = journalKey(namespace, "")
	var n int
	err := j.db.View(func(txn *badger.Txn) error {
		var opts = badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		var it = txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, errors.Wrap(err, "count scores")
}

func journalKey(namespace, key string) []byte {
	return []byte(namespace + "/" + key)
}
