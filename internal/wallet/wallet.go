// Package wallet wires the wallet session object graph: storage, secret
// material, account derivation, chain registry, active-account session and
// the signing facade.
package wallet

import (
	"github.com/pkg/errors"

	"github.com/calyptra/stark-wallet/internal/config"
	"github.com/calyptra/stark-wallet/internal/storage"
	"github.com/calyptra/stark-wallet/internal/wallet/chain"
	"github.com/calyptra/stark-wallet/internal/wallet/derive"
	"github.com/calyptra/stark-wallet/internal/wallet/secrets"
	"github.com/calyptra/stark-wallet/internal/wallet/session"
	"github.com/calyptra/stark-wallet/internal/wallet/signer"
)

// Wallet is one wallet session and its collaborators. Lifecycle is owned by
// the caller: create it, use it, Close it.
type Wallet struct {
	Config  config.Config
	Store   storage.Store
	Secrets secrets.Service
	Deriver derive.Service
	Chains  chain.Service
	Session *session.Session
	Signer  signer.Service
}

// New builds a Wallet with badger persistence and the ethclient network
// provider.
func New(cfg config.Config) (*Wallet, error) {
	store, err := storage.NewBadger(cfg.DatabasePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open secret store")
	}

	return NewWithCollaborators(cfg, store, session.NewEthProvider())
}

// NewWithCollaborators builds a Wallet on explicit storage and network
// collaborators. Tests inject a memory store and a fake provider here.
func NewWithCollaborators(cfg config.Config, store storage.Store, provider session.NetworkProvider) (*Wallet, error) {
	secretsService := secrets.NewService(store, cfg.Passphrase, nil)
	deriver := derive.NewService()
	chains := chain.NewService(cfg.RPCOverrides)
	sess := session.New(secretsService, deriver, chains, provider, cfg.DefaultChainID)

	signerService, err := signer.NewService(sess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create signer")
	}

	return &Wallet{
		Config:  cfg,
		Store:   store,
		Secrets: secretsService,
		Deriver: deriver,
		Chains:  chains,
		Session: sess,
		Signer:  signerService,
	}, nil
}

// Close tears the session down and closes the secret store.
func (w *Wallet) Close() error {
	w.Session.Close()

	if err := w.Store.Close(); err != nil {
		return errors.Wrap(err, "failed to close secret store")
	}

	return nil
}
