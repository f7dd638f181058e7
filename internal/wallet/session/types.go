// Package session owns the active account selection of a wallet session: the
// (account index, chain id) pair currently in use, the account key pair
// derived for it, its STARK key pair and the RPC connection to the selected
// chain.
package session

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// Keep preserves the corresponding component of the current selection when
// passed as index or chain id to ActiveAccount.
const Keep = -1

// ErrNoActiveAccount is returned when signing is attempted before any
// account has been activated.
var ErrNoActiveAccount = errors.New("no active account")

// Conn is the connection to one chain's RPC endpoint. *ethclient.Client
// satisfies it.
type Conn interface {
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	Close()
}

// NetworkProvider yields a connection for an RPC URL.
type NetworkProvider interface {
	Connect(ctx context.Context, rpcURL string) (Conn, error)
}
