package storage

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// badgerStore implements Store on top of a badger database.
type badgerStore struct {
	db *badger.DB
}

// NewBadger opens (or creates) a badger database at the given path.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewBadger(path string) (Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger's built-in logging.

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}

	return &badgerStore{db: db}, nil
}

// Get retrieves the value stored under key.
func (s *badgerStore) Get(_ context.Context, key string) (string, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "badger get")
	}

	return string(value), nil
}

// Set stores value under key.
func (s *badgerStore) Set(_ context.Context, key string, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return errors.Wrap(err, "badger set")
	}

	return nil
}

// Has checks whether key has a stored value.
func (s *badgerStore) Has(_ context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "badger has")
	}

	return exists, nil
}

// Close closes the underlying database.
func (s *badgerStore) Close() error {
	return s.db.Close()
}
