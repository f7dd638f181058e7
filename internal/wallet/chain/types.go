// Package chain resolves chain ids to chain metadata (name, RPC endpoint).
package chain

import "context"

// Chain is the metadata of one supported chain.
type Chain struct {
	ChainID int64
	Name    string
	RPCURL  string
}

// Service looks up chain metadata by chain id.
type Service interface {
	// GetChain returns the metadata for chainID. Fails if the chain is
	// neither built in nor configured.
	GetChain(ctx context.Context, chainID int64) (*Chain, error)

	// ListChains returns all known chains ordered by chain id.
	ListChains(ctx context.Context) ([]*Chain, error)
}
