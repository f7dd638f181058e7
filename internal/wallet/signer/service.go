package signer

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/calyptra/stark-wallet/internal/util"
	"github.com/calyptra/stark-wallet/internal/wallet/derive"
	"github.com/calyptra/stark-wallet/internal/wallet/session"
	"github.com/calyptra/stark-wallet/internal/wallet/stark"
)

// defaultGasLimit covers a plain value transfer when the caller supplies no
// gas limit.
const defaultGasLimit = 21000

type service struct {
	session *session.Session
}

// NewService creates a new signing Service bound to the session.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(sess *session.Session) (Service, error) {
	return &service{
		session: sess,
	}, nil
}

// SendTransaction signs req and submits it through the active connection.
func (s *service) SendTransaction(ctx context.Context, req *TxRequest) (string, error) {
	account, _, conn, chainID, err := s.active(ctx)
	if err != nil {
		return "", err
	}

	signedTx, err := s.buildAndSign(ctx, req, account, conn, chainID)
	if err != nil {
		return "", err
	}

	if err := conn.SendTransaction(ctx, signedTx); err != nil {
		return "", errors.Wrap(err, "failed to submit transaction")
	}

	return signedTx.Hash().Hex(), nil
}

// SignTransaction signs req and returns the raw signed transaction.
func (s *service) SignTransaction(ctx context.Context, req *TxRequest) ([]byte, error) {
	account, _, conn, chainID, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	signedTx, err := s.buildAndSign(ctx, req, account, conn, chainID)
	if err != nil {
		return nil, err
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	return raw, nil
}

// SignMessage signs a pre-hashed 32-byte digest.
func (s *service) SignMessage(ctx context.Context, digest []byte) (string, error) {
	account, _, _, _, err := s.active(ctx)
	if err != nil {
		return "", err
	}

	if len(digest) != common.HashLength {
		return "", errors.Errorf("digest must be %d bytes, got %d", common.HashLength, len(digest))
	}

	return signDigest(digest, account)
}

// SignPersonalMessage signs message under the personal-message convention.
func (s *service) SignPersonalMessage(ctx context.Context, message string) (string, error) {
	account, _, _, _, err := s.active(ctx)
	if err != nil {
		return "", err
	}

	var data []byte
	if util.IsHexString(message) {
		data, err = util.DecodeHexString(message)
		if err != nil {
			return "", err
		}
	} else {
		data = []byte(message)
	}

	return signDigest(accounts.TextHash(data), account)
}

// StarkSign signs a hex-encoded STARK message hash.
func (s *service) StarkSign(ctx context.Context, msgHash string) (string, error) {
	_, starkKeys, _, _, err := s.active(ctx)
	if err != nil {
		return "", err
	}

	hash, err := parseFieldElement(msgHash)
	if err != nil {
		return "", err
	}

	r, sig, err := starkKeys.Sign(hash)
	if err != nil {
		return "", err
	}

	return joinStarkSignature(r, sig), nil
}

// StarkVerify checks a StarkSign signature against the active key pair.
func (s *service) StarkVerify(ctx context.Context, msgHash string, signature string) (bool, error) {
	_, starkKeys, _, _, err := s.active(ctx)
	if err != nil {
		return false, err
	}

	hash, err := parseFieldElement(msgHash)
	if err != nil {
		return false, err
	}

	r, sig, err := splitStarkSignature(signature)
	if err != nil {
		return false, err
	}

	return starkKeys.Verify(hash, r, sig), nil
}

// active fetches the session snapshot, logging the permissive-degrade error
// when no account has been activated.
func (s *service) active(ctx context.Context) (*derive.Account, *stark.KeyPair, session.Conn, int64, error) {
	account, starkKeys, conn, chainID, err := s.session.Active()
	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Msg("Signing attempted without an active account")
		return nil, nil, nil, 0, err
	}

	return account, starkKeys, conn, chainID, nil
}

// buildAndSign normalizes the request, fills nonce and gas price from the
// connection when absent, and signs with EIP-155 for the active chain. A
// from address differing from the active account is logged and ignored.
func (s *service) buildAndSign(ctx context.Context, req *TxRequest, account *derive.Account, conn session.Conn, chainID int64) (*types.Transaction, error) {
	log := util.LogFromContext(ctx)

	req.Normalize()

	if req.From != "" && !strings.EqualFold(req.From, account.Address.Hex()) {
		log.Warn().
			Str("from", req.From).
			Str("active", account.Address.Hex()).
			Msg("Transaction from address does not match active account, signing with active account")
	}
	req.From = ""

	nonce, err := s.resolveNonce(ctx, req, account, conn)
	if err != nil {
		return nil, err
	}

	gasPrice := req.GasPrice
	if gasPrice == nil {
		gasPrice, err = conn.SuggestGasPrice(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch gas price")
		}
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit = defaultGasLimit
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	// Nil recipient means contract creation.
	var to *common.Address
	if req.To != "" {
		if !common.IsHexAddress(req.To) {
			return nil, errors.Errorf("invalid to address: %s", req.To)
		}
		addr := common.HexToAddress(req.To)
		to = &addr
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       to,
		Value:    value,
		Data:     req.Data,
	})

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(chainID)), account.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return signedTx, nil
}

func (s *service) resolveNonce(ctx context.Context, req *TxRequest, account *derive.Account, conn session.Conn) (uint64, error) {
	if req.Nonce != nil {
		return *req.Nonce, nil
	}

	nonce, err := conn.PendingNonceAt(ctx, account.Address)
	if err != nil {
		return 0, errors.Wrap(err, "failed to fetch nonce")
	}

	return nonce, nil
}

// signDigest signs a 32-byte digest and joins the signature into a single
// hex string with the Ethereum recovery-id convention (v = 27/28).
func signDigest(digest []byte, account *derive.Account) (string, error) {
	sig, err := crypto.Sign(digest, account.PrivateKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign digest")
	}

	sig[crypto.RecoveryIDOffset] += 27

	return hexutil.Encode(sig), nil
}
