package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"chainvote/internal/domain"
)

type accountSigner struct {
	provider domain.WalletProvider
	account  common.Address
}

// NewSigner binds provider to one of its granted accounts.
func NewSigner(provider domain.WalletProvider, account common.Address) domain.Signer {
	return &accountSigner{provider: provider, account: account}
}

func (s *accountSigner) Address() common.Address { return s.account }

func (s *accountSigner) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	return s.provider.SignMessage(ctx, s.account, msg)
}

func (s *accountSigner) SignTransaction(
	ctx context.Context,
	tx *ethtypes.Transaction,
	chainID *big.Int,
) (*ethtypes.Transaction, error) {
	return s.provider.SignTransaction(ctx, s.account, tx, chainID)
}
