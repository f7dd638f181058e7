// Package signer exposes the signing operations of the active session
// account: transaction signing and submission, digest and personal-message
// signing, and STARK sign/verify.
package signer

import (
	"context"
	"math/big"
)

// Service routes signing operations to the active account's key material.
// Every operation fails with session.ErrNoActiveAccount (and a zero result)
// when no account has been activated.
type Service interface {
	// SendTransaction signs req and submits it through the active account's
	// RPC connection, returning the transaction hash.
	SendTransaction(ctx context.Context, req *TxRequest) (string, error)

	// SignTransaction signs req and returns the RLP-encoded signed
	// transaction without submitting it.
	SignTransaction(ctx context.Context, req *TxRequest) ([]byte, error)

	// SignMessage signs a pre-hashed 32-byte digest with the account's
	// private key and returns the joined 65-byte signature hex.
	SignMessage(ctx context.Context, digest []byte) (string, error)

	// SignPersonalMessage applies the "\x19Ethereum Signed Message:" prefix
	// convention before signing. Hex-encoded input is detected and decoded;
	// anything else is signed as UTF-8 bytes.
	SignPersonalMessage(ctx context.Context, message string) (string, error)

	// StarkSign signs a hex-encoded STARK message hash with the active
	// STARK key pair, returning the joined r||s signature hex.
	StarkSign(ctx context.Context, msgHash string) (string, error)

	// StarkVerify checks a StarkSign signature against the active STARK key
	// pair.
	StarkVerify(ctx context.Context, msgHash string, signature string) (bool, error)
}

// TxRequest is a transaction payload as supplied by the caller, validated
// and normalized at the boundary.
type TxRequest struct {
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Nonce    *uint64  `json:"nonce,omitempty"`
	Gas      uint64   `json:"gas,omitempty"`
	GasLimit uint64   `json:"gasLimit,omitempty"`
	GasPrice *big.Int `json:"gasPrice,omitempty"`
	Value    *big.Int `json:"value,omitempty"`
	Data     []byte   `json:"data,omitempty"`
}

// Normalize renames the provider-compat `gas` field to `gasLimit` and drops
// the original key. GasLimit wins when both are set.
func (r *TxRequest) Normalize() {
	if r.GasLimit == 0 && r.Gas != 0 {
		r.GasLimit = r.Gas
	}
	r.Gas = 0
}
