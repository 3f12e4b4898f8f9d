package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// WalletProvider is the account-holding side of a vote: it lists accounts,
// asks the user to authorise access and signs on their behalf.
type WalletProvider interface {
	// Accounts returns the accounts already authorised for this client.
	Accounts(ctx context.Context) ([]common.Address, error)
	// RequestAccounts asks the user to authorise access and returns the
	// accounts they granted.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// SignMessage produces a personal_sign style signature over msg.
	SignMessage(ctx context.Context, account common.Address, msg []byte) ([]byte, error)
	SignTransaction(
		ctx context.Context,
		account common.Address,
		tx *ethtypes.Transaction,
		chainID *big.Int,
	) (*ethtypes.Transaction, error)
}

// Signer is a single authorised account of a WalletProvider.
type Signer interface {
	Address() common.Address
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
	SignTransaction(ctx context.Context, tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error)
}
