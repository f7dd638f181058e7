// Package storage provides the key-value persistence used for wallet secret
// material.
package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned when a key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Store is the key-value collaborator persisting secret material across
// process restarts.
type Store interface {
	// Get retrieves the value stored under key. Returns ErrKeyNotFound if
	// the key has no value.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// Has checks whether key has a stored value.
	Has(ctx context.Context, key string) (bool, error)

	Close() error
}
