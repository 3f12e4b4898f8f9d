package app

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"chainvote/internal/ballot"
	"chainvote/internal/domain"
	accountsvc "chainvote/internal/services/account"
	votingsvc "chainvote/internal/services/voting"
	"chainvote/internal/store"
	"chainvote/internal/wallet"
)

// WireOptions carries the per-invocation inputs that are not configuration.
type WireOptions struct {
	Passphrase string
	// Overwrite lets init/import replace an existing wallet key.
	Overwrite bool
	Logger    *zap.Logger
	// Chain replaces the JSON-RPC chain client; used by tests.
	Chain domain.ChainClient
}

// NewWire constructs the dependency graph from cfg. Chain and wallet
// connections are opened lazily, when the first vote workflow needs them.
func NewWire(cfg Config, opts WireOptions) (*App, error) {
	settings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// File-based store: wallet key and vote journal.
	fs := store.NewFileStore(cfg.Home)

	a := &App{
		Config:     cfg,
		Settings:   settings,
		Log:        log,
		Accounts:   accountsvc.New(fs, opts.Overwrite),
		Receipts:   fs,
		Passphrase: &wallet.Passphrase{},
	}
	a.Passphrase.Set(opts.Passphrase)

	provider, err := a.walletProvider(fs)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Wallet = provider

	bind := func(ctx context.Context) (domain.Ballot, error) {
		client := opts.Chain
		if client == nil {
			ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
			if err != nil {
				return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
			}
			a.onClose(ec.Close)
			client = ec
		}
		c, err := ballot.Bind(settings.Contract, client, ballot.Options{
			ChainID:      settings.ChainID,
			GasLimit:     cfg.GasLimit,
			PollInterval: settings.PollInterval,
			Logger:       log,
		})
		if err != nil {
			return nil, err
		}
		if cfg.VerifyContract {
			if err := c.VerifyCode(ctx); err != nil {
				return nil, err
			}
		}
		return c, nil
	}

	a.Voting = votingsvc.New(provider, bind, votingsvc.Options{
		Receipts:       fs,
		ConfirmTimeout: settings.ConfirmTimeout,
		Logger:         log,
	})
	return a, nil
}

func (a *App) walletProvider(fs *store.FileStore) (domain.WalletProvider, error) {
	switch a.Config.Wallet {
	case WalletRPC:
		// HTTP endpoints connect on first request; websocket endpoints
		// connect here.
		w, err := wallet.DialRPC(context.Background(), a.Config.WalletEndpoint())
		if err != nil {
			return nil, err
		}
		a.onClose(w.Close)
		return w, nil
	default:
		w := wallet.NewLocal(fs, a.Passphrase.Authorizer())
		a.onClose(w.Lock)
		return w, nil
	}
}
