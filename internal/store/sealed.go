package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"chainvote/internal/domain"
)

// sealedVersion is the current on-disk format of wallet.enc.
const sealedVersion = 1

// kdfParams are the scrypt cost parameters stored with each sealed file.
type kdfParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

var (
	defaultKDF = kdfParams{N: 1 << 15, R: 8, P: 1}
	// lightKDF is only for tests; see WithLightScrypt.
	lightKDF = kdfParams{N: 1 << 12, R: 8, P: 1}
)

// sealed is the JSON document written to disk. The salt and the header
// fields are authenticated as additional data.
type sealed struct {
	Version int       `json:"version"`
	KDF     kdfParams `json:"kdf"`
	Salt    []byte    `json:"salt"`
	Nonce   []byte    `json:"nonce"`
	Cipher  []byte    `json:"ciphertext"`
}

func (s sealed) additionalData() []byte {
	return fmt.Appendf(nil, "chainvote-wallet/v%d/%d/%d/%d/%x", s.Version, s.KDF.N, s.KDF.R, s.KDF.P, s.Salt)
}

// seal encrypts plaintext with XChaCha20-Poly1305 under a scrypt-derived key.
func seal(passphrase string, plaintext []byte, kdf kdfParams) ([]byte, error) {
	s := sealed{
		Version: sealedVersion,
		KDF:     kdf,
		Salt:    make([]byte, 16),
		Nonce:   make([]byte, chacha20poly1305.NonceSizeX),
	}
	if _, err := rand.Read(s.Salt); err != nil {
		return nil, err
	}
	if _, err := rand.Read(s.Nonce); err != nil {
		return nil, err
	}
	aead, err := s.aead(passphrase)
	if err != nil {
		return nil, err
	}
	s.Cipher = aead.Seal(nil, s.Nonce, plaintext, s.additionalData())
	return json.Marshal(s)
}

// unseal reverses seal. A wrong passphrase and a tampered file are
// indistinguishable and both yield domain.ErrWrongPassphrase.
func unseal(passphrase string, b []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWrongPassphrase, err)
	}
	if s.Version != sealedVersion {
		return nil, fmt.Errorf("unsupported wallet file version %d", s.Version)
	}
	if len(s.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, domain.ErrWrongPassphrase
	}
	aead, err := s.aead(passphrase)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, s.Nonce, s.Cipher, s.additionalData())
	if err != nil {
		return nil, domain.ErrWrongPassphrase
	}
	return pt, nil
}

func (s sealed) aead(passphrase string) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), s.Salt, s.KDF.N, s.KDF.R, s.KDF.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
