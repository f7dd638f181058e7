// Package secrets manages the wallet's root secret material: entropy and the
// BIP-39 mnemonic derived from it. Values are generated lazily, cached in
// memory and persisted through the storage collaborator.
package secrets

import (
	"context"

	"github.com/pkg/errors"
)

// Storage keys for the cached secret material.
const (
	KeyEntropy  = "entropy"
	KeyMnemonic = "mnemonic"
)

// EntropySize is the size of the root entropy in bytes (128 bits, 12-word
// mnemonic).
const EntropySize = 16

// ErrUnknownKey is returned when a secret is requested for a key with no
// known generation rule.
var ErrUnknownKey = errors.New("unknown secret key")

// Service provides lazily generated, cached secret material.
type Service interface {
	// Entropy returns the hex-encoded root entropy, generating and
	// persisting it on first use. Repeated calls return the identical value.
	Entropy(ctx context.Context) (string, error)

	// Mnemonic returns the BIP-39 mnemonic encoding the root entropy,
	// generating and persisting it on first use.
	Mnemonic(ctx context.Context) (string, error)

	// Secret returns the secret stored under key. Fails with ErrUnknownKey
	// for keys without a generation rule.
	Secret(ctx context.Context, key string) (string, error)

	// Clear drops the in-memory cache. Persisted values survive.
	Clear()
}
