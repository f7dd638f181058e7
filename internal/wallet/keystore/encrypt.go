package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 32 // scrypt salt size
	ivSize   = 16 // AES-128-CTR IV size
)

// Encrypt encrypts plaintext under password and returns the serialized
// keystore v3 envelope. A nil params uses DefaultScryptParams.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func Encrypt(plaintext string, password string, params *ScryptParams) (string, error) {
	if params == nil {
		params = DefaultScryptParams()
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", errors.Wrap(err, "failed to generate IV")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	// AES-128 uses the first half of the derived key, the MAC the second.
	ciphertext, err := applyAES128CTR(derivedKey[:16], iv, []byte(plaintext))
	if err != nil {
		return "", errors.Wrap(err, "failed to encrypt secret")
	}

	mac := calculateMAC(derivedKey[16:32], ciphertext)

	envelope := &EncryptedJSON{
		//nolint:mnd // 3 is the Ethereum keystore v3 version number
		Version: 3,
		ID:      uuid.New().String(),
	}
	envelope.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	envelope.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	envelope.Crypto.Cipher = "aes-128-ctr"
	envelope.Crypto.KDF = "scrypt"
	envelope.Crypto.KDFParams.DKLen = params.DKLen
	envelope.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	envelope.Crypto.KDFParams.N = params.N
	envelope.Crypto.KDFParams.R = params.R
	envelope.Crypto.KDFParams.P = params.P
	envelope.Crypto.MAC = hex.EncodeToString(mac)

	blob, err := json.Marshal(envelope)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal keystore envelope")
	}

	return string(blob), nil
}

// applyAES128CTR runs AES-128-CTR over data. CTR mode is symmetric, the same
// function encrypts and decrypts.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func applyAES128CTR(key []byte, iv []byte, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, data)

	return out, nil
}

// calculateMAC computes Keccak-256(derivedKey[16:32] || ciphertext), the
// keystore v3 MAC.
func calculateMAC(key []byte, ciphertext []byte) []byte {
	return crypto.Keccak256(key, ciphertext)
}
