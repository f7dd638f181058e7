package session

import (
	"context"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// ethProvider dials RPC endpoints with go-ethereum's ethclient.
type ethProvider struct{}

// NewEthProvider creates the production NetworkProvider.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEthProvider() NetworkProvider {
	return ethProvider{}
}

// Connect dials the RPC endpoint. Cancellation and timeouts are the
// caller's, passed through the context.
//
//nolint:ireturn // Conn is the seam the session depends on
func (ethProvider) Connect(ctx context.Context, rpcURL string) (Conn, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", rpcURL)
	}

	return client, nil
}
