package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
)

const (
	walletFile   = "wallet.enc"
	receiptsFile = "receipts.json"
)

// FileStore stores the wallet key and the vote journal on disk.
type FileStore struct {
	dir   string
	mu    sync.Mutex
	light bool
}

// Option customises a FileStore.
type Option func(*FileStore)

// WithLightScrypt uses cheaper scrypt parameters for new key files. Only
// intended for tests.
func WithLightScrypt() Option { return func(s *FileStore) { s.light = true } }

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string, opts ...Option) *FileStore {
	s := &FileStore{dir: dir}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string { return s.dir }

// ---------- Wallet key ----------

// SaveWalletKey encrypts key with passphrase and writes it, replacing any
// existing key file.
func (s *FileStore) SaveWalletKey(passphrase string, key domain.WalletKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(key)
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)

	kdf := defaultKDF
	if s.light {
		kdf = lightKDF
	}
	b, err := seal(passphrase, raw, kdf)
	if err != nil {
		return err
	}
	return replaceFile(filepath.Join(s.dir, walletFile), b, 0o600)
}

// LoadWalletKey decrypts the key file. A missing file is
// domain.ErrWalletUnavailable.
func (s *FileStore) LoadWalletKey(passphrase string) (domain.WalletKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok, err := readIfExists(filepath.Join(s.dir, walletFile))
	if err != nil {
		return domain.WalletKey{}, err
	}
	if !ok {
		return domain.WalletKey{}, domain.ErrWalletUnavailable
	}
	raw, err := unseal(passphrase, b)
	if err != nil {
		return domain.WalletKey{}, err
	}
	defer crypto.Wipe(raw)

	var key domain.WalletKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return domain.WalletKey{}, err
	}
	return key, nil
}

// HasWalletKey reports whether a key file exists.
func (s *FileStore) HasWalletKey() (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, walletFile))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// ---------- Receipts ----------

// AppendReceipt adds a receipt to the end of the journal.
func (s *FileStore) AppendReceipt(receipt domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, receiptsFile)
	var receipts []domain.Receipt
	if err := loadJSON(path, &receipts); err != nil {
		return err
	}
	receipts = append(receipts, receipt)
	return saveJSON(path, receipts, 0o600)
}

// ListReceipts returns the journal, oldest first.
func (s *FileStore) ListReceipts() ([]domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var receipts []domain.Receipt
	if err := loadJSON(filepath.Join(s.dir, receiptsFile), &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// Compile-time assertions that FileStore implements the domain stores.
var (
	_ domain.KeyStore     = (*FileStore)(nil)
	_ domain.ReceiptStore = (*FileStore)(nil)
)
