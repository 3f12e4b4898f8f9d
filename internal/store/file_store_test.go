package store_test

import (
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
	"chainvote/internal/store"
)

func TestWalletKey_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	pass := "Correct-Horse-9"

	var ks domain.KeyStore = store.NewFileStore(home, store.WithLightScrypt())

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if err := ks.SaveWalletKey(pass, key); err != nil {
		t.Fatalf("save key: %v", err)
	}

	got, err := ks.LoadWalletKey(pass)
	if err != nil {
		t.Fatalf("load key: %v", err)
	}
	if got.Address != key.Address || string(got.Private) != string(key.Private) {
		t.Fatalf("mismatch after load")
	}

	info, err := os.Stat(filepath.Join(home, "wallet.enc"))
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("key file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWalletKey_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	ks := store.NewFileStore(home, store.WithLightScrypt())

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if err := ks.SaveWalletKey("correct", key); err != nil {
		t.Fatalf("save key: %v", err)
	}
	if _, err := ks.LoadWalletKey("wrong"); !errors.Is(err, domain.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestWalletKey_Missing(t *testing.T) {
	ks := store.NewFileStore(t.TempDir())

	ok, err := ks.HasWalletKey()
	if err != nil || ok {
		t.Fatalf("HasWalletKey = %v, %v; want false, nil", ok, err)
	}
	if _, err := ks.LoadWalletKey("x"); !errors.Is(err, domain.ErrWalletUnavailable) {
		t.Fatalf("expected ErrWalletUnavailable, got %v", err)
	}
}

func TestReceipts_AppendList(t *testing.T) {
	rs := store.NewFileStore(t.TempDir())

	empty, err := rs.ListReceipts()
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("want no receipts, got %d", len(empty))
	}

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := domain.Receipt{
		ID:            "a",
		Choice:        domain.ChoiceYes,
		Account:       common.HexToAddress("0x01"),
		TxHash:        common.HexToHash("0xaa"),
		Signature:     []byte{1, 2, 3},
		SignatureHash: common.HexToHash("0xbb"),
		BlockNumber:   7,
		After:         domain.Tally{Yes: big.NewInt(3), No: big.NewInt(1)},
		At:            at,
	}
	second := first
	second.ID = "b"
	second.Choice = domain.ChoiceNo
	second.After = domain.Tally{Yes: big.NewInt(3), No: big.NewInt(2)}

	for _, r := range []domain.Receipt{first, second} {
		if err := rs.AppendReceipt(r); err != nil {
			t.Fatalf("append %s: %v", r.ID, err)
		}
	}

	got, err := rs.ListReceipts()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []domain.Receipt{first, second}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })); diff != "" {
		t.Fatalf("receipts mismatch (-want +got):\n%s", diff)
	}
}

func TestWalletKey_TamperedFile(t *testing.T) {
	home := t.TempDir()
	ks := store.NewFileStore(home, store.WithLightScrypt())

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if err := ks.SaveWalletKey("correct", key); err != nil {
		t.Fatalf("save key: %v", err)
	}

	path := filepath.Join(home, "wallet.enc")
	rewrite := func(field string, v any) {
		t.Helper()
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(b, &doc); err != nil {
			t.Fatalf("decode: %v", err)
		}
		doc[field] = v
		if b, err = json.Marshal(doc); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if err := os.WriteFile(path, b, 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	rewrite("salt", "AAAAAAAAAAAAAAAAAAAAAA==")
	if _, err := ks.LoadWalletKey("correct"); !errors.Is(err, domain.ErrWrongPassphrase) {
		t.Fatalf("tampered salt: expected ErrWrongPassphrase, got %v", err)
	}

	rewrite("version", 9)
	_, err = ks.LoadWalletKey("correct")
	if err == nil || errors.Is(err, domain.ErrWrongPassphrase) {
		t.Fatalf("unknown version: expected a version error, got %v", err)
	}
}
