package devchain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// CallArgs is the subset of an eth_call / eth_estimateGas request the chain
// understands. Older clients send calldata as "data", newer ones as "input".
type CallArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Input hexutil.Bytes   `json:"input"`
}

func (a CallArgs) msg() ethereum.CallMsg {
	m := ethereum.CallMsg{To: a.To, Data: a.Input}
	if a.From != nil {
		m.From = *a.From
	}
	if len(m.Data) == 0 {
		m.Data = a.Data
	}
	return m
}

// ethAPI serves the eth_ namespace.
type ethAPI struct {
	chain *Chain
}

func (api *ethAPI) ChainId(ctx context.Context) (*hexutil.Big, error) {
	id, err := api.chain.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(id), nil
}

func (api *ethAPI) BlockNumber() hexutil.Uint64 {
	api.chain.mu.Lock()
	defer api.chain.mu.Unlock()
	return hexutil.Uint64(api.chain.block)
}

func (api *ethAPI) GetCode(ctx context.Context, addr common.Address, block *string) (hexutil.Bytes, error) {
	return api.chain.CodeAt(ctx, addr, nil)
}

func (api *ethAPI) Call(ctx context.Context, args CallArgs, block *string) (hexutil.Bytes, error) {
	return api.chain.CallContract(ctx, args.msg(), nil)
}

func (api *ethAPI) EstimateGas(ctx context.Context, args CallArgs, block *string) (hexutil.Uint64, error) {
	gas, err := api.chain.EstimateGas(ctx, args.msg())
	return hexutil.Uint64(gas), err
}

func (api *ethAPI) GetTransactionCount(ctx context.Context, addr common.Address, block *string) (hexutil.Uint64, error) {
	n, err := api.chain.PendingNonceAt(ctx, addr)
	return hexutil.Uint64(n), err
}

func (api *ethAPI) GasPrice(ctx context.Context) (*hexutil.Big, error) {
	p, err := api.chain.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(p), nil
}

func (api *ethAPI) SendRawTransaction(ctx context.Context, input hexutil.Bytes) (common.Hash, error) {
	tx := new(ethtypes.Transaction)
	if err := tx.UnmarshalBinary(input); err != nil {
		return common.Hash{}, err
	}
	if err := api.chain.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, err
	}
	return tx.Hash(), nil
}

// GetTransactionReceipt answers null for unknown or pending transactions.
func (api *ethAPI) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*ethtypes.Receipt, error) {
	r, err := api.chain.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	return r, err
}

// netAPI serves net_version, which some clients probe on connect.
type netAPI struct {
	chain *Chain
}

func (api *netAPI) Version() string {
	api.chain.mu.Lock()
	defer api.chain.mu.Unlock()
	return new(big.Int).Set(api.chain.ID).String()
}

// NewServer returns a JSON-RPC server backed by chain. The server is an
// http.Handler and can also be dialled in process with rpc.DialInProc.
func NewServer(chain *Chain) (*rpc.Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("eth", &ethAPI{chain: chain}); err != nil {
		return nil, err
	}
	if err := srv.RegisterName("net", &netAPI{chain: chain}); err != nil {
		return nil, err
	}
	return srv, nil
}
