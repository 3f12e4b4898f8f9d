package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"chainvote/internal/domain"
)

// userRejectedCode is the EIP-1193 error code for a request the user declined.
const userRejectedCode = 4001

// RPC is a wallet reached over JSON-RPC.
type RPC struct {
	client *rpc.Client
}

// DialRPC connects to the wallet endpoint at url.
func DialRPC(ctx context.Context, url string) (*RPC, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial wallet %s: %w", url, err)
	}
	return NewRPC(c), nil
}

// NewRPC wraps an existing client.
func NewRPC(c *rpc.Client) *RPC { return &RPC{client: c} }

// Close releases the underlying connection.
func (w *RPC) Close() { w.client.Close() }

// Accounts calls eth_accounts.
func (w *RPC) Accounts(ctx context.Context) ([]common.Address, error) {
	var out []common.Address
	if err := w.client.CallContext(ctx, &out, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return out, nil
}

// RequestAccounts calls eth_requestAccounts. A user rejection or an empty
// grant is domain.ErrAuthorizationRejected.
func (w *RPC) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var out []common.Address
	if err := w.client.CallContext(ctx, &out, "eth_requestAccounts"); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
			return nil, fmt.Errorf("%w: %v", domain.ErrAuthorizationRejected, err)
		}
		return nil, fmt.Errorf("eth_requestAccounts: %w", err)
	}
	if len(out) == 0 {
		return nil, domain.ErrAuthorizationRejected
	}
	return out, nil
}

// SignMessage calls personal_sign.
func (w *RPC) SignMessage(ctx context.Context, account common.Address, msg []byte) ([]byte, error) {
	var sig hexutil.Bytes
	if err := w.client.CallContext(ctx, &sig, "personal_sign", hexutil.Bytes(msg), account); err != nil {
		return nil, fmt.Errorf("personal_sign: %w", err)
	}
	return sig, nil
}

// sendTxArgs is the eth_signTransaction request object.
type sendTxArgs struct {
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to"`
	Gas      hexutil.Uint64  `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    hexutil.Uint64  `json:"nonce"`
	Data     hexutil.Bytes   `json:"data"`
	ChainID  *hexutil.Big    `json:"chainId"`
}

// signTxResult is the eth_signTransaction response object.
type signTxResult struct {
	Raw hexutil.Bytes `json:"raw"`
}

// SignTransaction calls eth_signTransaction and checks the returned
// transaction was signed by account.
func (w *RPC) SignTransaction(
	ctx context.Context,
	account common.Address,
	tx *ethtypes.Transaction,
	chainID *big.Int,
) (*ethtypes.Transaction, error) {
	args := sendTxArgs{
		From:     account,
		To:       tx.To(),
		Gas:      hexutil.Uint64(tx.Gas()),
		GasPrice: (*hexutil.Big)(tx.GasPrice()),
		Value:    (*hexutil.Big)(tx.Value()),
		Nonce:    hexutil.Uint64(tx.Nonce()),
		Data:     tx.Data(),
		ChainID:  (*hexutil.Big)(chainID),
	}
	var res signTxResult
	if err := w.client.CallContext(ctx, &res, "eth_signTransaction", args); err != nil {
		return nil, fmt.Errorf("eth_signTransaction: %w", err)
	}

	signed := new(ethtypes.Transaction)
	if err := signed.UnmarshalBinary(res.Raw); err != nil {
		return nil, fmt.Errorf("decode signed transaction: %w", err)
	}
	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(chainID), signed)
	if err != nil {
		return nil, fmt.Errorf("recover transaction sender: %w", err)
	}
	if from != account {
		return nil, fmt.Errorf("wallet signed as %s, want %s", from.Hex(), account.Hex())
	}
	return signed, nil
}

var _ domain.WalletProvider = (*RPC)(nil)
