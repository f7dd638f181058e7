package test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/calyptra/stark-wallet/internal/wallet/session"
)

// FakeConn is an in-memory session.Conn recording submitted transactions.
type FakeConn struct {
	mu       sync.Mutex
	sentTxs  []*types.Transaction
	Nonce    uint64
	GasPrice *big.Int
	Closed   bool
}

// SendTransaction records the transaction.
func (c *FakeConn) SendTransaction(_ context.Context, tx *types.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sentTxs = append(c.sentTxs, tx)

	return nil
}

// PendingNonceAt returns the configured nonce.
func (c *FakeConn) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	return c.Nonce, nil
}

// SuggestGasPrice returns the configured gas price, defaulting to 1 gwei.
func (c *FakeConn) SuggestGasPrice(_ context.Context) (*big.Int, error) {
	if c.GasPrice == nil {
		return big.NewInt(1_000_000_000), nil
	}

	return new(big.Int).Set(c.GasPrice), nil
}

// Close marks the connection closed.
func (c *FakeConn) Close() {
	c.Closed = true
}

// SentTxs returns the transactions submitted so far.
func (c *FakeConn) SentTxs() []*types.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]*types.Transaction(nil), c.sentTxs...)
}

// FakeProvider is an in-memory session.NetworkProvider handing out FakeConns.
type FakeProvider struct {
	mu    sync.Mutex
	urls  []string
	conns []*FakeConn
}

// Connect records the dial and returns a fresh FakeConn.
//
//nolint:ireturn // session.Conn is the seam under test
func (p *FakeProvider) Connect(_ context.Context, rpcURL string) (session.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn := &FakeConn{}
	p.urls = append(p.urls, rpcURL)
	p.conns = append(p.conns, conn)

	return conn, nil
}

// Dials returns the number of connections handed out.
func (p *FakeProvider) Dials() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.conns)
}

// Conns returns the connections handed out so far.
func (p *FakeProvider) Conns() []*FakeConn {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*FakeConn(nil), p.conns...)
}

// URLs returns the RPC URLs dialed so far.
func (p *FakeProvider) URLs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.urls...)
}
