// Package test provides shared helpers for package tests: a fake network
// provider and a fully wired test wallet on in-memory storage.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calyptra/stark-wallet/internal/config"
	"github.com/calyptra/stark-wallet/internal/storage"
	"github.com/calyptra/stark-wallet/internal/wallet"
)

// DefaultTestChainID is the chain activated by default in test wallets.
const DefaultTestChainID int64 = 11155111

// WithTestWallet runs closure with a wallet wired on in-memory storage and a
// fake network provider.
func WithTestWallet(t *testing.T, closure func(w *wallet.Wallet, provider *FakeProvider)) {
	t.Helper()

	cfg := config.Config{
		DefaultChainID: DefaultTestChainID,
		LogLevel:       "warn",
	}

	provider := &FakeProvider{}

	w, err := wallet.NewWithCollaborators(cfg, storage.NewMemory(), provider)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, w.Close())
	})

	closure(w, provider)
}
