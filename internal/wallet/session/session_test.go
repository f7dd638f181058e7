package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/stark-wallet/internal/test"
	"github.com/calyptra/stark-wallet/internal/wallet"
	"github.com/calyptra/stark-wallet/internal/wallet/session"
	"github.com/calyptra/stark-wallet/internal/wallet/stark"
)

func TestActiveFailsBeforeActivation(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, _ *test.FakeProvider) {
		_, _, _, _, err := w.Session.Active()
		require.ErrorIs(t, err, session.ErrNoActiveAccount)

		_, err = w.Session.StarkKeys()
		require.ErrorIs(t, err, session.ErrNoActiveAccount)
	})
}

func TestActivateDerivesAndConnects(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, provider *test.FakeProvider) {
		ctx := context.Background()

		account, err := w.Session.ActiveAccount(ctx, 0, test.DefaultTestChainID)
		require.NoError(t, err)
		require.NotNil(t, account)

		assert.Equal(t, 1, provider.Dials())

		// The connection targets the selected chain's RPC endpoint.
		chainData, err := w.Chains.GetChain(ctx, test.DefaultTestChainID)
		require.NoError(t, err)
		assert.Equal(t, []string{chainData.RPCURL}, provider.URLs())
	})
}

func TestActiveSelectionIsCached(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, provider *test.FakeProvider) {
		ctx := context.Background()

		first, err := w.Session.ActiveAccount(ctx, 0, test.DefaultTestChainID)
		require.NoError(t, err)

		second, err := w.Session.ActiveAccount(ctx, 0, test.DefaultTestChainID)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, provider.Dials())

		// Keep preserves the current selection.
		third, err := w.Session.ActiveAccount(ctx, session.Keep, session.Keep)
		require.NoError(t, err)
		assert.Same(t, first, third)
		assert.Equal(t, 1, provider.Dials())
	})
}

func TestKeepOnFreshSessionUsesDefaults(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, provider *test.FakeProvider) {
		ctx := context.Background()

		account, err := w.Session.ActiveAccount(ctx, session.Keep, session.Keep)
		require.NoError(t, err)
		assert.Equal(t, 0, account.Index)

		chainData, err := w.Chains.GetChain(ctx, test.DefaultTestChainID)
		require.NoError(t, err)
		assert.Equal(t, []string{chainData.RPCURL}, provider.URLs())
	})
}

func TestSwitchingIndexRederives(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, provider *test.FakeProvider) {
		ctx := context.Background()

		account0, err := w.Session.ActiveAccount(ctx, 0, test.DefaultTestChainID)
		require.NoError(t, err)

		account1, err := w.Session.ActiveAccount(ctx, 1, session.Keep)
		require.NoError(t, err)

		assert.NotEqual(t, account0.Address, account1.Address)
		assert.Equal(t, 2, provider.Dials())

		// The previous connection was torn down with the old selection.
		assert.True(t, provider.Conns()[0].Closed)
		assert.False(t, provider.Conns()[1].Closed)
	})
}

func TestSwitchingChainRederives(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, provider *test.FakeProvider) {
		ctx := context.Background()

		account0, err := w.Session.ActiveAccount(ctx, 0, test.DefaultTestChainID)
		require.NoError(t, err)

		account0again, err := w.Session.ActiveAccount(ctx, session.Keep, 137)
		require.NoError(t, err)

		// Same index, same key material, fresh derivation and connection.
		assert.Equal(t, account0.Address, account0again.Address)
		assert.Equal(t, 2, provider.Dials())
	})
}

func TestAccountAndStarkKeysStayConsistent(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, _ *test.FakeProvider) {
		ctx := context.Background()

		for _, index := range []int{0, 1, 5} {
			account, err := w.Session.ActiveAccount(ctx, index, test.DefaultTestChainID)
			require.NoError(t, err)

			_, starkKeys, _, chainID, err := w.Session.Active()
			require.NoError(t, err)
			assert.Equal(t, test.DefaultTestChainID, chainID)

			expected, err := stark.DeriveFromECDSA(account.PrivateKey)
			require.NoError(t, err)
			assert.Equal(t, 0, expected.PublicKey().Cmp(starkKeys.PublicKey()))
		}
	})
}

func TestUnknownChainFailsWithoutMutatingSelection(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, provider *test.FakeProvider) {
		ctx := context.Background()

		account, err := w.Session.ActiveAccount(ctx, 0, test.DefaultTestChainID)
		require.NoError(t, err)

		_, err = w.Session.ActiveAccount(ctx, 0, 424242)
		require.Error(t, err)

		// The previous selection is still active and untouched.
		current, _, _, chainID, err := w.Session.Active()
		require.NoError(t, err)
		assert.Same(t, account, current)
		assert.Equal(t, test.DefaultTestChainID, chainID)
		assert.False(t, provider.Conns()[0].Closed)
	})
}

func TestCloseDropsActiveAccount(t *testing.T) {
	test.WithTestWallet(t, func(w *wallet.Wallet, provider *test.FakeProvider) {
		ctx := context.Background()

		_, err := w.Session.ActiveAccount(ctx, 0, test.DefaultTestChainID)
		require.NoError(t, err)

		w.Session.Close()

		_, _, _, _, err = w.Session.Active()
		require.ErrorIs(t, err, session.ErrNoActiveAccount)
		assert.True(t, provider.Conns()[0].Closed)
	})
}
