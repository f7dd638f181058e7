package derive

import (
	"context"
	"crypto/ecdsa"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

type service struct{}

// NewService creates a new account deriver.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// Account derives the account key pair at the given index from the mnemonic.
func (s *service) Account(_ context.Context, mnemonic string, index int) (*Account, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, "")

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	path := Path(index)

	derivedKey, err := deriveKeyFromPath(masterKey, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key from path")
	}

	privateKey, err := crypto.ToECDSA(privateKeyBytes(derivedKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("failed to cast public key to ECDSA")
	}

	return &Account{
		Index:          index,
		DerivationPath: path,
		Address:        crypto.PubkeyToAddress(*publicKey),
		PrivateKey:     privateKey,
	}, nil
}

// privateKeyBytes returns the raw 32-byte private key of a bip32 key.
// bip32 private keys carry a leading 0x00 pad byte.
func privateKeyBytes(key *bip32.Key) []byte {
	raw := key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// deriveKeyFromPath walks a BIP-44 path from the master key.
func deriveKeyFromPath(masterKey *bip32.Key, path string) (*bip32.Key, error) {
	indices, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key, nil
}

// parsePath parses a BIP-44 path string into child key indices.
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0].
func parsePath(path string) ([]uint32, error) {
	if !strings.HasPrefix(path, "m/") {
		return nil, errors.Errorf("invalid derivation path: %s", path)
	}

	parts := strings.Split(path[2:], "/")
	indices := make([]uint32, 0, len(parts))

	for _, part := range parts {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, errors.Errorf("invalid path segment: %s", part)
		}

		child := uint32(index)
		if hardened {
			child += bip32.FirstHardenedChild
		}

		indices = append(indices, child)
	}

	return indices, nil
}
