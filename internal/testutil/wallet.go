// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
	"chainvote/internal/store"
	"chainvote/internal/wallet"
)

// Passphrase is the passphrase used for test wallets.
const Passphrase = "Test-Passphrase-123!"

// NewLocalWallet creates a key in a temporary home and returns a locked local
// wallet over it together with the key.
func NewLocalWallet(t *testing.T) (*wallet.Local, *store.FileStore, domain.WalletKey) {
	t.Helper()
	fs := store.NewFileStore(t.TempDir(), store.WithLightScrypt())
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if err := fs.SaveWalletKey(Passphrase, key); err != nil {
		t.Fatalf("save key: %v", err)
	}
	return wallet.NewLocal(fs, wallet.StaticPassphrase(Passphrase)), fs, key
}

// NewSigner returns a signer for an unlocked local test wallet.
func NewSigner(t *testing.T) domain.Signer {
	t.Helper()
	w, _, key := NewLocalWallet(t)
	if _, err := w.RequestAccounts(context.Background()); err != nil {
		t.Fatalf("unlock wallet: %v", err)
	}
	return wallet.NewSigner(w, key.Address)
}
