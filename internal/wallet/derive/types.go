// Package derive turns the wallet mnemonic and an account index into a
// secp256k1 account key pair along the fixed BIP-44 path template.
package derive

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// PathTemplate is the BIP-44 derivation path template for EVM accounts,
// parameterized by the account index.
const PathTemplate = "m/44'/60'/0'/0/%d"

// Path maps an account index to its derivation path. Pure, no error cases;
// callers ensure the index is a valid account index.
func Path(index int) string {
	return fmt.Sprintf(PathTemplate, index)
}

// Account is one derived account key pair.
type Account struct {
	Index          int
	DerivationPath string
	Address        common.Address
	PrivateKey     *ecdsa.PrivateKey
}

// Service derives account key pairs from a mnemonic.
type Service interface {
	// Account derives the account at the given index. Deterministic: the
	// same mnemonic and index always yield the same key pair. No I/O.
	Account(ctx context.Context, mnemonic string, index int) (*Account, error)
}
