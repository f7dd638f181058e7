package keystore_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/stark-wallet/internal/wallet/keystore"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	blob, err := keystore.Encrypt("legal winner thank year wave", "correct horse", keystore.LightScryptParams())
	require.NoError(t, err)

	plaintext, err := keystore.Decrypt(blob, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "legal winner thank year wave", plaintext)
}

func TestDecryptWrongPassword(t *testing.T) {
	blob, err := keystore.Encrypt("secret", "password-a", keystore.LightScryptParams())
	require.NoError(t, err)

	_, err = keystore.Decrypt(blob, "password-b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAC mismatch")
}

func TestEnvelopeShape(t *testing.T) {
	blob, err := keystore.Encrypt("secret", "password", keystore.LightScryptParams())
	require.NoError(t, err)

	var envelope keystore.EncryptedJSON
	require.NoError(t, json.Unmarshal([]byte(blob), &envelope))

	assert.Equal(t, 3, envelope.Version)
	assert.NotEmpty(t, envelope.ID)
	assert.Equal(t, "aes-128-ctr", envelope.Crypto.Cipher)
	assert.Equal(t, "scrypt", envelope.Crypto.KDF)
	assert.Equal(t, 4096, envelope.Crypto.KDFParams.N)
	assert.NotEmpty(t, envelope.Crypto.MAC)
}

func TestEncryptUsesFreshSaltAndIV(t *testing.T) {
	first, err := keystore.Encrypt("secret", "password", keystore.LightScryptParams())
	require.NoError(t, err)

	second, err := keystore.Encrypt("secret", "password", keystore.LightScryptParams())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
