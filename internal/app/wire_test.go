package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainvote/internal/app"
	"chainvote/internal/devchain"
	"chainvote/internal/domain"
)

const pass = "Wire-Test-Pass-1!"

func TestNewWire_LocalWalletEndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := app.DefaultConfig(t.TempDir())
	cfg.PollInterval = "1ms"
	chain := devchain.New(common.HexToAddress(cfg.ContractAddress))
	chain.SetTally(2, 1)

	a, err := app.NewWire(cfg, app.WireOptions{Chain: chain})
	require.NoError(t, err)
	defer a.Close()
	assert.True(t, a.NeedsPassphrase())

	// Without a wallet the connect step reports it.
	_, err = a.Voting.Connect(ctx)
	assert.ErrorIs(t, err, domain.ErrWalletUnavailable)

	addr, err := a.Accounts.GenerateWallet(pass)
	require.NoError(t, err)

	a.Passphrase.Set(pass)
	assert.False(t, a.NeedsPassphrase())

	conn, err := a.Voting.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, addr, conn.Account)
	assert.Equal(t, int64(3), conn.Tally.Total().Int64())

	receipt, err := a.Voting.Cast(ctx, domain.ChoiceYes)
	require.NoError(t, err)
	assert.Equal(t, int64(3), receipt.After.Yes.Int64())

	list, err := a.Receipts.ListReceipts()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.WithinDuration(t, time.Now(), list[0].At, time.Minute)
}

func TestNewWire_VerifiesContractCode(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	chain := devchain.New(common.HexToAddress("0x01"))

	a, err := app.NewWire(cfg, app.WireOptions{Chain: chain, Passphrase: pass})
	require.NoError(t, err)
	defer a.Close()
	_, err = a.Accounts.GenerateWallet(pass)
	require.NoError(t, err)

	_, err = a.Voting.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoContract)
}

func TestNewWire_InvalidConfig(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	cfg.Wallet = "browser"
	_, err := app.NewWire(cfg, app.WireOptions{})
	assert.Error(t, err)
}
