package account

import (
	"fmt"
	"unicode"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages the local wallet key using a backing store.
type Service struct {
	store     domain.KeyStore
	overwrite bool
}

// New returns a wallet service backed by the given store. Unless overwrite is
// set, creating or importing a key over an existing one fails with
// domain.ErrWalletExists.
func New(s domain.KeyStore, overwrite bool) *Service {
	return &Service{store: s, overwrite: overwrite}
}

// GenerateWallet creates a new key, saves it encrypted with the passphrase,
// and returns its address.
func (s *Service) GenerateWallet(passphrase string) (common.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, err
	}
	return s.save(passphrase, key)
}

// ImportPrivateKey stores a hex encoded private key.
func (s *Service) ImportPrivateKey(passphrase, hexKey string) (common.Address, error) {
	key, err := crypto.KeyFromHex(hexKey)
	if err != nil {
		return common.Address{}, err
	}
	return s.save(passphrase, key)
}

// ImportKeystore decrypts an Ethereum v3 keystore file and stores its key
// under passphrase.
func (s *Service) ImportKeystore(
	passphrase string,
	keystoreJSON []byte,
	keystorePassphrase string,
) (common.Address, error) {
	k, err := keystore.DecryptKey(keystoreJSON, keystorePassphrase)
	if err != nil {
		return common.Address{}, fmt.Errorf("decrypt keystore: %w", err)
	}
	return s.save(passphrase, crypto.KeyFromECDSA(k.PrivateKey))
}

// WalletAddress decrypts the local key and returns its address.
func (s *Service) WalletAddress(passphrase string) (common.Address, error) {
	key, err := s.store.LoadWalletKey(passphrase)
	if err != nil {
		return common.Address{}, err
	}
	crypto.Wipe(key.Private)
	return key.Address, nil
}

func (s *Service) save(passphrase string, key domain.WalletKey) (common.Address, error) {
	defer crypto.Wipe(key.Private)

	if !isSecurePassphrase(passphrase) {
		return common.Address{}, ErrWeakPassphrase
	}
	if !s.overwrite {
		exists, err := s.store.HasWalletKey()
		if err != nil {
			return common.Address{}, err
		}
		if exists {
			return common.Address{}, fmt.Errorf("%w (use --force to replace it)", domain.ErrWalletExists)
		}
	}
	if err := s.store.SaveWalletKey(passphrase, key); err != nil {
		return common.Address{}, err
	}
	return key.Address, nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.WalletService.
var _ domain.WalletService = (*Service)(nil)
