package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/calyptra/stark-wallet/internal/util"
	"github.com/calyptra/stark-wallet/internal/wallet/chain"
	"github.com/calyptra/stark-wallet/internal/wallet/derive"
	"github.com/calyptra/stark-wallet/internal/wallet/secrets"
	"github.com/calyptra/stark-wallet/internal/wallet/stark"
)

// Session is the explicit owner of the active account selection. All state
// is guarded by the mutex; ActiveAccount's read-modify-write is atomic, so
// concurrent callers cannot leave the selection half switched.
type Session struct {
	secrets  secrets.Service
	deriver  derive.Service
	chains   chain.Service
	provider NetworkProvider

	defaultChainID int64

	mu            sync.Mutex
	activeIndex   int
	activeChainID int64
	account       *derive.Account
	starkKeys     *stark.KeyPair
	conn          Conn
}

// New creates a session with no active account. defaultChainID is activated
// when the first caller passes Keep for the chain.
func New(secretsService secrets.Service, deriver derive.Service, chains chain.Service, provider NetworkProvider, defaultChainID int64) *Session {
	return &Session{
		secrets:        secretsService,
		deriver:        deriver,
		chains:         chains,
		provider:       provider,
		defaultChainID: defaultChainID,
	}
}

// ActiveAccount returns the account for the requested selection, re-deriving
// when no account is cached or the requested (index, chainID) differs from
// the cached selection. Pass Keep to preserve the current index or chain.
// Re-derivation derives the account key pair, its STARK key pair and a fresh
// connection to the chain's RPC endpoint, atomically.
func (s *Session) ActiveAccount(ctx context.Context, index int, chainID int64) (*derive.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index == Keep {
		index = 0
		if s.account != nil {
			index = s.activeIndex
		}
	}
	if chainID == Keep {
		chainID = s.defaultChainID
		if s.account != nil {
			chainID = s.activeChainID
		}
	}

	if s.account != nil && index == s.activeIndex && chainID == s.activeChainID {
		return s.account, nil
	}

	log := util.LogFromContext(ctx)

	mnemonic, err := s.secrets.Mnemonic(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load mnemonic")
	}

	account, err := s.deriver.Account(ctx, mnemonic, index)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive account %d", index)
	}

	starkKeys, err := stark.DeriveFromECDSA(account.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive stark key pair")
	}

	chainData, err := s.chains.GetChain(ctx, chainID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up chain %d", chainID)
	}

	conn, err := s.provider.Connect(ctx, chainData.RPCURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to chain %d", chainID)
	}

	// The previous selection is invalid from here on.
	if s.conn != nil {
		s.conn.Close()
	}

	s.activeIndex = index
	s.activeChainID = chainID
	s.account = account
	s.starkKeys = starkKeys
	s.conn = conn

	log.Info().
		Int("index", index).
		Int64("chain_id", chainID).
		Str("address", account.Address.Hex()).
		Msg("Activated account")

	return account, nil
}

// Active returns a snapshot of the active account material. Fails with
// ErrNoActiveAccount when nothing has been activated yet.
func (s *Session) Active() (*derive.Account, *stark.KeyPair, Conn, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		return nil, nil, nil, 0, ErrNoActiveAccount
	}

	return s.account, s.starkKeys, s.conn, s.activeChainID, nil
}

// StarkKeys returns the active STARK key pair.
func (s *Session) StarkKeys() (*stark.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.starkKeys == nil {
		return nil, ErrNoActiveAccount
	}

	return s.starkKeys, nil
}

// Close tears the session down: drops key material and closes the RPC
// connection.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}

	s.account = nil
	s.starkKeys = nil
	s.secrets.Clear()
}
