package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
)

// Authorizer supplies the passphrase that unlocks the local wallet. Returning
// an error declines the request.
type Authorizer func(ctx context.Context) (string, error)

// StaticPassphrase returns an Authorizer that always answers with pass. An
// empty pass declines.
func StaticPassphrase(pass string) Authorizer {
	return func(context.Context) (string, error) {
		if pass == "" {
			return "", fmt.Errorf("passphrase required (-p)")
		}
		return pass, nil
	}
}

// Local is a wallet backed by the encrypted key file.
type Local struct {
	keys      domain.KeyStore
	authorize Authorizer

	mu   sync.Mutex
	sk   *ecdsa.PrivateKey
	addr common.Address
}

// NewLocal returns a locked local wallet.
func NewLocal(keys domain.KeyStore, authorize Authorizer) *Local {
	return &Local{keys: keys, authorize: authorize}
}

// Accounts returns the unlocked account, or nothing while locked.
func (w *Local) Accounts(ctx context.Context) ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sk == nil {
		return []common.Address{}, nil
	}
	return []common.Address{w.addr}, nil
}

// RequestAccounts unlocks the key file with the passphrase from the
// Authorizer.
func (w *Local) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	ok, err := w.keys.HasWalletKey()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no local wallet, run `chainvote init` first", domain.ErrWalletUnavailable)
	}
	if w.authorize == nil {
		return nil, domain.ErrAuthorizationRejected
	}
	pass, err := w.authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthorizationRejected, err)
	}

	key, err := w.keys.LoadWalletKey(pass)
	if err != nil {
		return nil, err
	}
	sk, err := crypto.ToECDSA(key)
	crypto.Wipe(key.Private)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.sk = sk
	w.addr = key.Address
	return []common.Address{w.addr}, nil
}

// SignMessage signs msg with the unlocked key, personal_sign style.
func (w *Local) SignMessage(ctx context.Context, account common.Address, msg []byte) ([]byte, error) {
	sk, err := w.keyFor(account)
	if err != nil {
		return nil, err
	}
	return crypto.PersonalSign(sk, msg)
}

// SignTransaction signs tx for chainID with the unlocked key.
func (w *Local) SignTransaction(
	ctx context.Context,
	account common.Address,
	tx *ethtypes.Transaction,
	chainID *big.Int,
) (*ethtypes.Transaction, error) {
	sk, err := w.keyFor(account)
	if err != nil {
		return nil, err
	}
	return ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(chainID), sk)
}

// Lock forgets the unlocked key.
func (w *Local) Lock() {
	w.mu.Lock()
	defer w.mu.Unlock()
	crypto.WipeKey(w.sk)
	w.sk = nil
	w.addr = common.Address{}
}

func (w *Local) keyFor(account common.Address) (*ecdsa.PrivateKey, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sk == nil {
		return nil, fmt.Errorf("wallet locked: %w", domain.ErrAuthorizationRejected)
	}
	if account != w.addr {
		return nil, fmt.Errorf("account %s is not managed by this wallet", account.Hex())
	}
	return w.sk, nil
}

var _ domain.WalletProvider = (*Local)(nil)

// Passphrase holds a passphrase that can be supplied after the wallet is
// built, e.g. typed into the interactive screen.
type Passphrase struct {
	mu sync.Mutex
	v  string
}

// Set stores the passphrase.
func (p *Passphrase) Set(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v = s
}

// IsSet reports whether a non-empty passphrase has been stored.
func (p *Passphrase) IsSet() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v != ""
}

// Authorizer returns an Authorizer answering with the current value.
func (p *Passphrase) Authorizer() Authorizer {
	return func(ctx context.Context) (string, error) {
		p.mu.Lock()
		v := p.v
		p.mu.Unlock()
		return StaticPassphrase(v)(ctx)
	}
}
