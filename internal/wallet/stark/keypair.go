// Package stark wraps the STARK-curve signature scheme used for L2 protocol
// signatures. Key pairs are derived deterministically from the active
// account's secp256k1 private key.
package stark

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/NethermindEth/starknet.go/curve"
	"github.com/pkg/errors"
)

// KeyPair is a STARK-curve key pair. The private scalar is nil for
// verify-only pairs built with FromPublic.
type KeyPair struct {
	private *big.Int
	pubX    *big.Int
	pubY    *big.Int
}

// FromPrivate builds a key pair from a private scalar.
func FromPrivate(private *big.Int) (*KeyPair, error) {
	if private == nil || private.Sign() == 0 {
		return nil, errors.New("private scalar must be non-zero")
	}

	pubX, pubY, err := curve.Curve.PrivateToPoint(private)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute public point")
	}

	return &KeyPair{
		private: new(big.Int).Set(private),
		pubX:    pubX,
		pubY:    pubY,
	}, nil
}

// FromPublic builds a verify-only key pair from a public point.
func FromPublic(pubX, pubY *big.Int) *KeyPair {
	return &KeyPair{
		pubX: new(big.Int).Set(pubX),
		pubY: new(big.Int).Set(pubY),
	}
}

// DeriveFromECDSA derives the STARK key pair paired with a secp256k1 account
// key: the account's private scalar reduced into the STARK curve group.
// Deterministic, so account and STARK pair stay mutually consistent.
func DeriveFromECDSA(key *ecdsa.PrivateKey) (*KeyPair, error) {
	if key == nil {
		return nil, errors.New("account private key is nil")
	}

	private := new(big.Int).Mod(key.D, curve.Curve.N)
	if private.Sign() == 0 {
		return nil, errors.New("derived scalar is zero")
	}

	return FromPrivate(private)
}

// Sign signs a STARK message hash. Fails on verify-only pairs.
func (kp *KeyPair) Sign(msgHash *big.Int) (r *big.Int, s *big.Int, err error) {
	if kp.private == nil {
		return nil, nil, errors.New("key pair has no private scalar")
	}

	r, s, err = curve.Curve.Sign(msgHash, kp.private)
	if err != nil {
		return nil, nil, errors.Wrap(err, "stark sign")
	}

	return r, s, nil
}

// Verify checks a STARK signature over msgHash against this key pair's
// public point.
func (kp *KeyPair) Verify(msgHash *big.Int, r *big.Int, s *big.Int) bool {
	return curve.Curve.Verify(msgHash, r, s, kp.pubX, kp.pubY)
}

// PublicKey returns the x coordinate of the public point, the STARK public
// key.
func (kp *KeyPair) PublicKey() *big.Int {
	return new(big.Int).Set(kp.pubX)
}

// PublicKeyY returns the y coordinate of the public point, needed to rebuild
// a verify-only pair with FromPublic.
func (kp *KeyPair) PublicKeyY() *big.Int {
	return new(big.Int).Set(kp.pubY)
}

// PublicKeyHex returns the STARK public key as a 0x-prefixed, zero-padded
// hex string.
func (kp *KeyPair) PublicKeyHex() string {
	return fmt.Sprintf("0x%064x", kp.pubX)
}
