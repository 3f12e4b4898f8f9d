package app

import (
	"sync"

	"go.uber.org/zap"

	"chainvote/internal/domain"
	"chainvote/internal/services/voting"
	"chainvote/internal/wallet"
)

// App bundles the services commands use.
type App struct {
	Config     Config
	Settings   Settings
	Log        *zap.Logger
	Accounts   domain.WalletService
	Receipts   domain.ReceiptStore
	Wallet     domain.WalletProvider
	Voting     *voting.Service
	Passphrase *wallet.Passphrase

	mu      sync.Mutex
	closers []func()
	closed  bool
}

// Close releases network connections held by the app. Connections opened
// after Close are released as soon as they are registered.
func (a *App) Close() {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.closed = true
	a.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

// onClose registers fn to run on Close. It may be called from any goroutine.
func (a *App) onClose(fn func()) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		fn()
		return
	}
	a.closers = append(a.closers, fn)
	a.mu.Unlock()
}

// NeedsPassphrase reports whether the local wallet still waits for a
// passphrase before it can be unlocked.
func (a *App) NeedsPassphrase() bool {
	return a.Config.Wallet == WalletLocal && !a.Passphrase.IsSet()
}
