package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	domaintypes "chainvote/internal/domain/types"
)

// WalletService creates, imports and inspects the local wallet key.
type WalletService interface {
	GenerateWallet(passphrase string) (common.Address, error)
	ImportPrivateKey(passphrase, hexKey string) (common.Address, error)
	ImportKeystore(passphrase string, keystoreJSON []byte, keystorePassphrase string) (common.Address, error)
	WalletAddress(passphrase string) (common.Address, error)
}

// VotingService runs the connect, read and vote workflow against a ballot.
type VotingService interface {
	Connect(ctx context.Context) (domaintypes.Connection, error)
	Tally(ctx context.Context) (domaintypes.Tally, error)
	Cast(ctx context.Context, choice domaintypes.Choice) (domaintypes.Receipt, error)
}
