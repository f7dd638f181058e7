package secrets

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"

	"github.com/calyptra/stark-wallet/internal/storage"
	"github.com/calyptra/stark-wallet/internal/util"
	"github.com/calyptra/stark-wallet/internal/wallet/keystore"
)

type service struct {
	store      storage.Store
	passphrase string
	scrypt     *keystore.ScryptParams

	mu    sync.Mutex
	cache map[string]string
}

// NewService creates a new secrets Service on top of the given store. When
// passphrase is non-empty, values are wrapped in a keystore envelope before
// being persisted. A nil scryptParams uses the keystore defaults.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(store storage.Store, passphrase string, scryptParams *keystore.ScryptParams) Service {
	return &service{
		store:      store,
		passphrase: passphrase,
		scrypt:     scryptParams,
		cache:      make(map[string]string),
	}
}

// Entropy returns the hex-encoded root entropy, generating it on first use.
func (s *service) Entropy(ctx context.Context) (string, error) {
	return s.cached(ctx, KeyEntropy, s.generateEntropy)
}

// Mnemonic returns the BIP-39 mnemonic for the root entropy, generating it on
// first use.
func (s *service) Mnemonic(ctx context.Context) (string, error) {
	return s.cached(ctx, KeyMnemonic, s.generateMnemonic)
}

// Secret returns the secret stored under key.
func (s *service) Secret(ctx context.Context, key string) (string, error) {
	switch key {
	case KeyEntropy:
		return s.Entropy(ctx)
	case KeyMnemonic:
		return s.Mnemonic(ctx)
	default:
		return "", errors.Wrap(ErrUnknownKey, key)
	}
}

// Clear drops the in-memory cache.
func (s *service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]string)
}

// cached returns the value for key from the in-memory cache, the store, or
// the generator, in that order. Generated values are persisted before being
// returned.
func (s *service) cached(ctx context.Context, key string, generate func(ctx context.Context) (string, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.cache[key]; ok {
		return value, nil
	}

	value, err := s.load(ctx, key)
	if err == nil {
		s.cache[key] = value
		return value, nil
	}
	if !errors.Is(err, storage.ErrKeyNotFound) {
		return "", err
	}

	log := util.LogFromContext(ctx)

	value, err = generate(ctx)
	if err != nil {
		return "", err
	}

	if err := s.persist(ctx, key, value); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Msg("Generated and persisted secret material")

	s.cache[key] = value

	return value, nil
}

// generateEntropy draws EntropySize cryptographically secure random bytes.
func (s *service) generateEntropy(_ context.Context) (string, error) {
	entropy := make([]byte, EntropySize)
	if _, err := rand.Read(entropy); err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	return hex.EncodeToString(entropy), nil
}

// generateMnemonic encodes the root entropy as a BIP-39 mnemonic. The
// entropy is read via entropyLocked since the service mutex is already held.
func (s *service) generateMnemonic(ctx context.Context) (string, error) {
	entropyHex, err := s.entropyLocked(ctx)
	if err != nil {
		return "", err
	}

	entropy, err := hex.DecodeString(entropyHex)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode stored entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode mnemonic")
	}

	return mnemonic, nil
}

// entropyLocked is the Entropy path for callers already holding the mutex.
func (s *service) entropyLocked(ctx context.Context) (string, error) {
	if value, ok := s.cache[KeyEntropy]; ok {
		return value, nil
	}

	value, err := s.load(ctx, KeyEntropy)
	if err == nil {
		s.cache[KeyEntropy] = value
		return value, nil
	}
	if !errors.Is(err, storage.ErrKeyNotFound) {
		return "", err
	}

	value, err = s.generateEntropy(ctx)
	if err != nil {
		return "", err
	}

	if err := s.persist(ctx, KeyEntropy, value); err != nil {
		return "", err
	}

	s.cache[KeyEntropy] = value

	return value, nil
}

// load reads a persisted secret, unwrapping the keystore envelope when a
// passphrase is configured.
func (s *service) load(ctx context.Context, key string) (string, error) {
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if s.passphrase == "" {
		return stored, nil
	}

	value, err := keystore.Decrypt(stored, s.passphrase)
	if err != nil {
		return "", errors.Wrapf(err, "failed to decrypt secret %q", key)
	}

	return value, nil
}

// persist writes a secret, wrapping it in a keystore envelope when a
// passphrase is configured.
func (s *service) persist(ctx context.Context, key string, value string) error {
	stored := value

	if s.passphrase != "" {
		blob, err := keystore.Encrypt(value, s.passphrase, s.scrypt)
		if err != nil {
			return errors.Wrapf(err, "failed to encrypt secret %q", key)
		}
		stored = blob
	}

	if err := s.store.Set(ctx, key, stored); err != nil {
		return errors.Wrapf(err, "failed to persist secret %q", key)
	}

	return nil
}
