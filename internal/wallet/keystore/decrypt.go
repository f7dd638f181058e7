package keystore

import (
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// Decrypt decrypts a serialized keystore v3 envelope produced by Encrypt and
// returns the plaintext secret. A wrong password surfaces as a MAC mismatch.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func Decrypt(blob string, password string) (string, error) {
	var envelope EncryptedJSON
	if err := json.Unmarshal([]byte(blob), &envelope); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal keystore envelope")
	}

	salt, err := hex.DecodeString(envelope.Crypto.KDFParams.Salt)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode salt")
	}

	iv, err := hex.DecodeString(envelope.Crypto.CipherParams.IV)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode IV")
	}

	ciphertext, err := hex.DecodeString(envelope.Crypto.Ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(envelope.Crypto.MAC)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode MAC")
	}

	derivedKey, err := scrypt.Key(
		[]byte(password),
		salt,
		envelope.Crypto.KDFParams.N,
		envelope.Crypto.KDFParams.R,
		envelope.Crypto.KDFParams.P,
		envelope.Crypto.KDFParams.DKLen,
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	mac := calculateMAC(derivedKey[16:32], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return "", errors.New("invalid password: MAC mismatch")
	}

	plaintext, err := applyAES128CTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt secret")
	}

	return string(plaintext), nil
}
