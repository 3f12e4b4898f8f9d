package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	domaintypes "chainvote/internal/domain/types"
)

// ChainClient is the subset of an Ethereum JSON-RPC client the ballot needs.
// *ethclient.Client satisfies it.
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
}

// Ballot is a binding to the deployed yes/no voting contract.
type Ballot interface {
	Address() common.Address
	YesVotes(ctx context.Context) (*big.Int, error)
	NoVotes(ctx context.Context) (*big.Int, error)
	Tally(ctx context.Context) (domaintypes.Tally, error)
	Vote(
		ctx context.Context,
		signer Signer,
		choice domaintypes.Choice,
		signatureHash common.Hash,
	) (common.Hash, error)
	WaitMined(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
}
