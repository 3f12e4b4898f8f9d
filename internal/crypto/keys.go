package crypto

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"chainvote/internal/domain"
)

// GenerateKey returns a fresh secp256k1 wallet key.
func GenerateKey() (domain.WalletKey, error) {
	sk, err := ethcrypto.GenerateKey()
	if err != nil {
		return domain.WalletKey{}, err
	}
	return walletKey(sk), nil
}

// KeyFromHex parses a hex private key, with or without the 0x prefix.
func KeyFromHex(s string) (domain.WalletKey, error) {
	sk, err := ethcrypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return domain.WalletKey{}, fmt.Errorf("parse private key: %w", err)
	}
	return walletKey(sk), nil
}

// KeyFromECDSA wraps an already parsed private key.
func KeyFromECDSA(sk *ecdsa.PrivateKey) domain.WalletKey { return walletKey(sk) }

// ToECDSA converts the stored key back into a signing key and checks that it
// still matches the recorded address.
func ToECDSA(key domain.WalletKey) (*ecdsa.PrivateKey, error) {
	sk, err := ethcrypto.ToECDSA(key.Private)
	if err != nil {
		return nil, err
	}
	if addr := ethcrypto.PubkeyToAddress(sk.PublicKey); addr != key.Address {
		return nil, fmt.Errorf("wallet key does not match address %s", key.Address.Hex())
	}
	return sk, nil
}

func walletKey(sk *ecdsa.PrivateKey) domain.WalletKey {
	return domain.WalletKey{
		Address: ethcrypto.PubkeyToAddress(sk.PublicKey),
		Private: ethcrypto.FromECDSA(sk),
	}
}
