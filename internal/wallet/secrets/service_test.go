package secrets_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/calyptra/stark-wallet/internal/storage"
	"github.com/calyptra/stark-wallet/internal/wallet/keystore"
	"github.com/calyptra/stark-wallet/internal/wallet/secrets"
)

// zeroEntropyMnemonic is the BIP-39 encoding of 16 zero bytes.
const zeroEntropyMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestEntropyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := secrets.NewService(storage.NewMemory(), "", nil)

	first, err := svc.Entropy(ctx)
	require.NoError(t, err)

	second, err := svc.Entropy(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	raw, err := hex.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, secrets.EntropySize)
}

func TestMnemonicIsIdempotentAndValid(t *testing.T) {
	ctx := context.Background()
	svc := secrets.NewService(storage.NewMemory(), "", nil)

	first, err := svc.Mnemonic(ctx)
	require.NoError(t, err)

	second, err := svc.Mnemonic(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, bip39.IsMnemonicValid(first))
	assert.Len(t, strings.Fields(first), 12)
}

func TestMnemonicEncodesStoredEntropy(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	// Seed the store with 16 zero bytes of entropy.
	zero := make([]byte, secrets.EntropySize)
	require.NoError(t, store.Set(ctx, secrets.KeyEntropy, hex.EncodeToString(zero)))

	svc := secrets.NewService(store, "", nil)

	mnemonic, err := svc.Mnemonic(ctx)
	require.NoError(t, err)
	assert.Equal(t, zeroEntropyMnemonic, mnemonic)
}

func TestSecretDispatch(t *testing.T) {
	ctx := context.Background()
	svc := secrets.NewService(storage.NewMemory(), "", nil)

	entropy, err := svc.Secret(ctx, secrets.KeyEntropy)
	require.NoError(t, err)
	assert.NotEmpty(t, entropy)

	mnemonic, err := svc.Secret(ctx, secrets.KeyMnemonic)
	require.NoError(t, err)
	assert.True(t, bip39.IsMnemonicValid(mnemonic))
}

func TestSecretUnknownKey(t *testing.T) {
	ctx := context.Background()
	svc := secrets.NewService(storage.NewMemory(), "", nil)

	_, err := svc.Secret(ctx, "private-key")
	require.ErrorIs(t, err, secrets.ErrUnknownKey)
}

func TestSecretsSurviveNewServiceInstance(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first := secrets.NewService(store, "", nil)
	entropy, err := first.Entropy(ctx)
	require.NoError(t, err)
	mnemonic, err := first.Mnemonic(ctx)
	require.NoError(t, err)

	second := secrets.NewService(store, "", nil)
	entropyAgain, err := second.Entropy(ctx)
	require.NoError(t, err)
	mnemonicAgain, err := second.Mnemonic(ctx)
	require.NoError(t, err)

	assert.Equal(t, entropy, entropyAgain)
	assert.Equal(t, mnemonic, mnemonicAgain)
}

func TestClearDropsCacheOnly(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	svc := secrets.NewService(store, "", nil)

	entropy, err := svc.Entropy(ctx)
	require.NoError(t, err)

	svc.Clear()

	entropyAgain, err := svc.Entropy(ctx)
	require.NoError(t, err)
	assert.Equal(t, entropy, entropyAgain)
}

func TestPassphraseEncryptsAtRest(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	svc := secrets.NewService(store, "hunter22", keystore.LightScryptParams())

	entropy, err := svc.Entropy(ctx)
	require.NoError(t, err)

	// The persisted value is a keystore envelope, not the plain secret.
	stored, err := store.Get(ctx, secrets.KeyEntropy)
	require.NoError(t, err)
	assert.NotEqual(t, entropy, stored)
	assert.Contains(t, stored, "ciphertext")

	// A second instance with the right passphrase reads the same value.
	same := secrets.NewService(store, "hunter22", keystore.LightScryptParams())
	entropyAgain, err := same.Entropy(ctx)
	require.NoError(t, err)
	assert.Equal(t, entropy, entropyAgain)

	// A wrong passphrase fails instead of regenerating.
	wrong := secrets.NewService(store, "not-it", keystore.LightScryptParams())
	_, err = wrong.Entropy(ctx)
	require.Error(t, err)
}
