package chain

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// builtin is the default chain registry. RPC endpoints are public providers
// and can be overridden through configuration.
var builtin = []Chain{
	{ChainID: 1, Name: "ethereum", RPCURL: "https://cloudflare-eth.com"},
	{ChainID: 137, Name: "polygon", RPCURL: "https://polygon-rpc.com"},
	{ChainID: 11155111, Name: "sepolia", RPCURL: "https://rpc.sepolia.org"},
}

type service struct {
	chains map[int64]Chain
}

// NewService creates a chain registry from the built-in chains and the given
// RPC overrides. Overrides for unknown chain ids register new chains.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(rpcOverrides map[int64]string) Service {
	chains := make(map[int64]Chain, len(builtin)+len(rpcOverrides))

	for _, c := range builtin {
		chains[c.ChainID] = c
	}

	for chainID, rpcURL := range rpcOverrides {
		c, ok := chains[chainID]
		if !ok {
			c = Chain{ChainID: chainID, Name: fmt.Sprintf("chain-%d", chainID)}
		}
		c.RPCURL = rpcURL
		chains[chainID] = c
	}

	return &service{chains: chains}
}

// GetChain returns the metadata for chainID.
func (s *service) GetChain(_ context.Context, chainID int64) (*Chain, error) {
	c, ok := s.chains[chainID]
	if !ok {
		return nil, errors.Errorf("chain %d not found", chainID)
	}

	return &c, nil
}

// ListChains returns all known chains ordered by chain id.
func (s *service) ListChains(_ context.Context) ([]*Chain, error) {
	chains := make([]*Chain, 0, len(s.chains))
	for id := range s.chains {
		c := s.chains[id]
		chains = append(chains, &c)
	}

	sort.Slice(chains, func(i, j int) bool {
		return chains[i].ChainID < chains[j].ChainID
	})

	return chains, nil
}
